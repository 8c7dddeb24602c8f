package service

import "fmt"

// ─────────────────────────────────────────────────────────────
// Localized summaries — "en" | "zh" display strings
// ─────────────────────────────────────────────────────────────

// Language selects the language of summary strings. It has no effect on
// parsing or diffing.
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

// applySummary describes an applied batch.
func applySummary(lang Language, added, updated, deleted int) string {
	total := added + updated + deleted
	if lang == LangZH {
		return fmt.Sprintf("已应用 %d 处修改：新增 %d，更新 %d，删除 %d", total, added, updated, deleted)
	}
	return fmt.Sprintf("applied %d change(s): %d added, %d updated, %d deleted", total, added, updated, deleted)
}

// changeDescription describes a single applied diff for the change log.
func changeDescription(lang Language, d appliedChange) string {
	if lang == LangZH {
		switch d.action {
		case "add":
			return fmt.Sprintf("新增块 %s", d.blockID)
		case "delete":
			return fmt.Sprintf("删除块 %s", d.blockID)
		default:
			return fmt.Sprintf("更新块 %s", d.blockID)
		}
	}
	switch d.action {
	case "add":
		return fmt.Sprintf("added block %s", d.blockID)
	case "delete":
		return fmt.Sprintf("deleted block %s", d.blockID)
	default:
		return fmt.Sprintf("updated block %s", d.blockID)
	}
}

type appliedChange struct {
	action  string
	blockID string
}

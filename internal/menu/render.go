package menu

import (
	"fmt"

	"edulibrary/internal/models"
)

// View is a fully assembled menu: message text plus an inline keyboard
// laid out in rows.
type View struct {
	Text     string
	Keyboard [][]Button
}

// User-facing texts for the transient modes and the file listing.
const (
	bulkModeText = "أنت الآن في وضع الرفع الجماعي. 📂\nأرسل أي عدد من الملفات التي تريدها.\nعند الانتهاء، اضغط على زر '✅ تم الانتهاء' أدناه."

	deleteModeText = "وضع الحذف 🗑️\n\n- اضغط على ملف لتحديده للحذف.\n- اضغط مرة أخرى لإلغاء التحديد.\n- اضغط على \"تأكيد\" لحذف الملفات المحددة نهائياً."

	calculatorText  = "قسم الآلة الحاسبة 🧮"
	emptyFolderNote = "\n\nالمجلد فارغ حالياً."
	chooseFileNote  = "\n\nاختر الملف للتحميل:"
)

// Render produces the menu for a path. It is a pure function: files is
// the catalog sequence for the path's base key and pending is the
// session's marked-for-deletion index set (nil outside delete mode).
func Render(p Path, isAdmin bool, files []models.FileRecord, pending []int) View {
	switch p.Mode() {
	case ModeBulkUpload:
		return View{
			Text:     bulkModeText,
			Keyboard: [][]Button{{{Text: "✅ تم الانتهاء", Data: tokenFinishBulk}}},
		}
	case ModeDeleteSelect:
		return renderDeleteMode(files, pending)
	}

	level := classify(p)
	if level == LevelFiles {
		return renderFiles(p, isAdmin, files)
	}
	return renderStatic(p, level)
}

// renderDeleteMode lays out one row per file, toggling between mark and
// unmark actions, with a trailing confirm/cancel row. The confirm
// button only appears once at least one file is marked.
func renderDeleteMode(files []models.FileRecord, pending []int) View {
	var rows [][]Button
	for i, f := range files {
		if containsIndex(pending, i) {
			rows = append(rows, []Button{{
				Text: fmt.Sprintf("↩️ ~%s~", f.FileName),
				Data: fmt.Sprintf("%s::%d", verbUnmark, i),
			}})
		} else {
			rows = append(rows, []Button{{
				Text: fmt.Sprintf("🗑️ %s", f.FileName),
				Data: fmt.Sprintf("%s::%d", verbMark, i),
			}})
		}
	}

	var actions []Button
	if len(pending) > 0 {
		actions = append(actions, Button{Text: "✅ تأكيد الحذف النهائي", Data: tokenConfirmDelete})
	}
	actions = append(actions, Button{Text: "❌ إلغاء", Data: tokenCancelDelete})
	rows = append(rows, actions)

	return View{Text: deleteModeText, Keyboard: rows}
}

// renderFiles lists downloadable files one per row, then the admin
// action row, then navigation.
func renderFiles(p Path, isAdmin bool, files []models.FileRecord) View {
	text := fileListingTitle(p)
	if len(files) == 0 {
		text += emptyFolderNote
	} else {
		text += chooseFileNote
	}

	var rows [][]Button
	for i, f := range files {
		rows = append(rows, []Button{{
			Text: fmt.Sprintf("📄 %s", f.FileName),
			Data: downloadToken(i),
		}})
	}

	if isAdmin {
		actions := []Button{{Text: "➕ إضافة ملف", Data: tokenAddFiles}}
		if len(files) > 0 {
			actions = append(actions, Button{Text: "🗑️ حذف ملف", Data: tokenDeleteFiles})
		}
		rows = append(rows, actions)
	}

	rows = append(rows, navRow())
	return View{Text: text, Keyboard: rows}
}

// renderStatic lays a static menu's buttons into rows per its declared
// layout, then appends the navigation row everywhere but root.
func renderStatic(p Path, level Level) View {
	def := definitionFor(level, seniorGrades[p.Segment(2)])

	var rows [][]Button
	next := 0
	for _, size := range def.layout {
		var row []Button
		for i := 0; i < size && next < len(def.buttons); i++ {
			row = append(row, def.buttons[next])
			next++
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if !p.IsRoot() {
		rows = append(rows, navRow())
	}
	return View{Text: def.text, Keyboard: rows}
}

// fileListingTitle derives the heading for a file listing from the last
// chosen segment.
func fileListingTitle(p Path) string {
	if p.Contains(segCalculator) {
		return calculatorText
	}
	return fmt.Sprintf("ملفات: %s", materialLabel(p.Segment(p.Depth()-1)))
}

func navRow() []Button {
	return []Button{
		{Text: "🔙 رجوع", Data: tokenBack},
		{Text: "🏠 القائمة الرئيسية", Data: Root},
	}
}

func containsIndex(set []int, i int) bool {
	for _, v := range set {
		if v == i {
			return true
		}
	}
	return false
}

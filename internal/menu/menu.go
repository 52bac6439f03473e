package menu

import "fmt"

// Callback tokens understood by the state machine. Compound tokens are
// "VERB::ARG" with a decimal index argument.
const (
	// TokenCheckSubscription re-runs the channel membership check; it
	// is the only token handled while a user is still unverified.
	TokenCheckSubscription = "check_subscription"

	verbDownload = "DOWNLOAD"
	verbMark     = "MARK_DELETE"
	verbUnmark   = "UNDOMARK_DELETE"

	tokenConfirmDelete = "CONFIRM_DELETE"
	tokenAddFiles      = "add_file_prompt"
	tokenDeleteFiles   = "delete_file_prompt"
	tokenCancelDelete  = "cancel_delete"
	tokenFinishBulk    = "finish_bulk_upload"
	tokenBack          = "back"
)

// Special path segments with dedicated rendering.
const (
	segCalculator = "calculator_menu"
	segInquiries  = "inquiries"
)

// Button is a single inline keyboard button: label plus callback token.
type Button struct {
	Text string
	Data string
}

// definition is a static menu: fixed text, fixed buttons, and a row
// layout consumed left to right (each entry is a row's button count).
type definition struct {
	text    string
	buttons []Button
	layout  []int
}

var rootMenu = definition{
	text: "🎉 أهلاً بك في المكتبة التعليمية! 🎉\n\nاختر أحد الفصول للبدء.",
	buttons: []Button{
		{Text: "الفصل الأول F1 📚", Data: "initial:chapter1"},
		{Text: "الفصل الثاني F2 📖", Data: "initial:chapter2"},
		{Text: "الفصل الثالث F3 📘", Data: "initial:chapter3"},
		{Text: "الآلة الحاسبة 🧮", Data: "initial:calculator_menu"},
		{Text: "الاستفسارات ❓", Data: "initial:inquiries"},
	},
	layout: []int{2, 2, 1},
}

var inquiriesMenu = definition{
	text: "للاستفسارات أو الدعم الفني، يرجى التواصل عبر:\n\n📧 البريد الإلكتروني:\nM.DAWABSHEH85@gmail.com\n\n📞 رقم الهاتف:\n971526752603",
}

var gradesMenu = definition{
	text: "يرجى اختيار الصف الدراسي:",
	buttons: []Button{
		{Text: "الصف الخامس G5", Data: "grade5"},
		{Text: "الصف السادس G6", Data: "grade6"},
		{Text: "الصف السابع G7", Data: "grade7"},
		{Text: "الصف الثامن G8", Data: "grade8"},
		{Text: "الصف التاسع G9", Data: "grade9"},
		{Text: "الصف العاشر G10", Data: "grade10"},
		{Text: "الحادي عشر G11", Data: "grade11"},
		{Text: "الثاني عشر G12", Data: "grade12"},
	},
	layout: []int{2, 2, 2, 2},
}

var tracksMenu = definition{
	text: "يرجى اختيار المسار:",
	buttons: []Button{
		{Text: "المسار المتقدم 🚀", Data: "advanced"},
		{Text: "المسار العام 🛣️", Data: "general"},
	},
	layout: []int{2},
}

var subjectsJuniorMenu = definition{
	text: "يرجى اختيار المادة:",
	buttons: []Button{
		{Text: "العلوم 🧪", Data: "science"},
		{Text: "الرياضيات 📐", Data: "math"},
	},
	layout: []int{2},
}

var subjectsSeniorMenu = definition{
	text: "يرجى اختيار المادة:",
	buttons: []Button{
		{Text: "الرياضيات 📐", Data: "math"},
		{Text: "الفيزياء ⚛️", Data: "physics"},
		{Text: "الكيمياء 🔬", Data: "chemistry"},
		{Text: "الأحياء 🧬", Data: "biology"},
	},
	layout: []int{2, 2},
}

var languageMenu = definition{
	text: "يرجى اختيار لغة المحتوى:",
	buttons: []Button{
		{Text: "عربي 🇦🇪", Data: "arabic"},
		{Text: "English 🇬🇧", Data: "english"},
	},
	layout: []int{2},
}

var materialsMenu = definition{
	text: "يرجى اختيار نوع المادة:",
	buttons: []Button{
		{Text: "ملازم | Malazem", Data: "malazem"},
		{Text: "هياكل سابقة | Structures", Data: "structures"},
		{Text: "أوراق عمل | Worksheets", Data: "worksheets"},
		{Text: "امتحانات سابقة | Exams", Data: "previous_exams"},
		{Text: "دليل المعلم | Teacher Guide", Data: "teacher_guide"},
		{Text: "كتاب المعلم | Teacher Book", Data: "teacher_book"},
		{Text: "شروحات للدروس | Explanations", Data: "explanations"},
	},
	layout: []int{1, 1, 1, 1, 1, 1, 1},
}

// materialLabel returns the display label for a material-type token,
// falling back to the raw token for anything unknown.
func materialLabel(token string) string {
	for _, b := range materialsMenu.buttons {
		if b.Data == token {
			return b.Text
		}
	}
	return token
}

// downloadToken builds the compound callback token for a file at the
// given catalog index.
func downloadToken(index int) string {
	return fmt.Sprintf("%s::%d", verbDownload, index)
}

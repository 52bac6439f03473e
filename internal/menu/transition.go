package menu

import (
	"fmt"
	"strconv"
	"strings"

	"edulibrary/internal/models"
)

// EffectKind names a side effect the dispatcher must carry out.
type EffectKind int

const (
	// EffectSendFile sends the document identified by FileID to the chat.
	EffectSendFile EffectKind = iota
	// EffectDeleteFiles removes the given catalog indices at the
	// session's base path, before any re-render.
	EffectDeleteFiles
	// EffectToast answers the pressed button with a short notice.
	EffectToast
	// EffectMessage sends a standalone chat message.
	EffectMessage
)

// Effect is one side-effect request emitted by a transition. Fields are
// used per kind.
type Effect struct {
	Kind    EffectKind
	FileID  string
	Text    string
	Alert   bool
	Indices []int
}

// Result is the outcome of a transition: the updated session, the side
// effects to perform in order, and whether the menu must be re-rendered.
type Result struct {
	Session  models.Session
	Effects  []Effect
	Rerender bool
}

// Notices surfaced through effects.
const (
	nothingSelectedNotice = "لم يتم تحديد أي ملفات للحذف."
	bulkSavedNotice       = "تم حفظ جميع الملفات بنجاح! ✅"
)

func deletedNotice(count int) string {
	return fmt.Sprintf("تم حذف %d ملفات بنجاح.", count)
}

// Transition applies one action token to a session. files is the
// current catalog sequence for the session's base path; the function
// itself never touches storage or the transport. Admin-only verbs from
// non-admins leave everything untouched and just re-render the current
// menu. The subscription gate and the verification-retry token are
// handled by the dispatcher, which owns the external membership check.
func Transition(session models.Session, token string, isAdmin bool, files []models.FileRecord) Result {
	p := ParsePath(session.Path)
	verb, arg, compound := strings.Cut(token, "::")

	switch {
	case compound && verb == verbDownload:
		res := Result{Session: session}
		if i, ok := parseIndex(arg, len(files)); ok {
			res.Effects = append(res.Effects, Effect{Kind: EffectSendFile, FileID: files[i].FileID})
		}
		return res

	case compound && verb == verbMark:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		if i, ok := parseIndex(arg, len(files)); ok && !containsIndex(session.PendingDeletions, i) {
			session.PendingDeletions = append(session.PendingDeletions, i)
		}
		return finish(session, p, nil)

	case compound && verb == verbUnmark:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		session.PendingDeletions = removeIndex(session.PendingDeletions, mustIndex(arg))
		return finish(session, p, nil)

	case token == tokenConfirmDelete:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		var effects []Effect
		if len(session.PendingDeletions) > 0 {
			effects = append(effects,
				Effect{Kind: EffectDeleteFiles, Indices: session.PendingDeletions},
				Effect{Kind: EffectToast, Text: deletedNotice(len(session.PendingDeletions))},
			)
		} else {
			effects = append(effects, Effect{Kind: EffectToast, Text: nothingSelectedNotice})
		}
		session.PendingDeletions = nil
		return finish(session, p.ClearMode(), effects)

	case token == tokenAddFiles:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		return finish(session, p.WithMode(ModeBulkUpload), nil)

	case token == tokenDeleteFiles:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		session.PendingDeletions = []int{}
		return finish(session, p.WithMode(ModeDeleteSelect), nil)

	case token == tokenCancelDelete:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		session.PendingDeletions = nil
		return finish(session, p.ClearMode(), nil)

	case token == tokenFinishBulk:
		if !isAdmin {
			return Result{Session: session, Rerender: true}
		}
		return finish(session, p.ClearMode(), []Effect{{Kind: EffectMessage, Text: bulkSavedNotice}})

	case token == tokenBack:
		return finish(session, p.Pop(), nil)

	case token == Root:
		return finish(session, NewPath(), nil)

	default:
		// Dynamic selection: a full root-prefixed path replaces the
		// position, any other token descends one level.
		if strings.HasPrefix(token, Root+":") {
			return finish(session, ParsePath(token).ClearMode(), nil)
		}
		return finish(session, p.Push(token), nil)
	}
}

// AcceptsUpload reports whether a document from this user should be
// stored, and at which catalog key.
func AcceptsUpload(session models.Session, isAdmin bool) (string, bool) {
	p := ParsePath(session.Path)
	if !isAdmin || p.Mode() != ModeBulkUpload {
		return "", false
	}
	return p.Base(), true
}

// finish stamps the new path onto the session and enforces the
// pending-deletions invariant: the set exists only in delete mode.
func finish(session models.Session, p Path, effects []Effect) Result {
	if p.Mode() != ModeDeleteSelect {
		session.PendingDeletions = nil
	}
	session.Path = p.String()
	return Result{Session: session, Effects: effects, Rerender: true}
}

// parseIndex parses a decimal index and bounds-checks it against the
// catalog length. Stale or malformed indices are dropped silently.
func parseIndex(arg string, length int) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// mustIndex parses a decimal index without bounds-checking; unmarking
// an index that is no longer marked is already a no-op.
func mustIndex(arg string) int {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return -1
	}
	return i
}

func removeIndex(set []int, i int) []int {
	if !containsIndex(set, i) {
		return set
	}
	out := make([]int, 0, len(set)-1)
	for _, v := range set {
		if v != i {
			out = append(out, v)
		}
	}
	return out
}

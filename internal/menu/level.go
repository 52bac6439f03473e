package menu

// Level is the semantic menu level a path resolves to. Classification
// is table-driven rather than derived from raw segment arithmetic at
// each call site, so the senior-track branch point is explicit.
type Level int

const (
	LevelRoot Level = iota
	LevelInquiries
	LevelGrades
	LevelTracks
	LevelSubjects
	LevelLanguage
	LevelMaterials
	LevelFiles
)

// seniorGrades is the grade subset that inserts the extra
// track-selection step before subject selection.
var seniorGrades = map[string]bool{
	"grade11": true,
	"grade12": true,
}

// drillSteps maps (senior?, depth beyond the chapter segment) to the
// chooser shown at that step. Depth 2 (initial:chapterN) is always the
// grade chooser; the tables cover depth 3 onward. The senior table is
// one step longer because of the track chooser.
var drillSteps = map[bool][]Level{
	false: {LevelSubjects, LevelLanguage, LevelMaterials, LevelFiles},
	true:  {LevelTracks, LevelSubjects, LevelLanguage, LevelMaterials, LevelFiles},
}

// classify resolves a base path to its menu level. Transient modes are
// handled before classification by the renderer.
func classify(p Path) Level {
	if p.Depth() <= 1 {
		return LevelRoot
	}
	if p.Contains(segInquiries) {
		return LevelInquiries
	}
	if p.Contains(segCalculator) {
		// Direct file-listing section, no grade drill-down.
		return LevelFiles
	}
	if p.Depth() == 2 {
		return LevelGrades
	}

	steps := drillSteps[seniorGrades[p.Segment(2)]]
	i := p.Depth() - 3
	if i >= 0 && i < len(steps) {
		return steps[i]
	}
	// Deeper than the tree goes; fall back to the root menu like the
	// renderer's default branch.
	return LevelRoot
}

// definitionFor returns the static menu shown at a chooser level. The
// subject chooser differs between the senior and non-senior branches.
func definitionFor(level Level, senior bool) definition {
	switch level {
	case LevelInquiries:
		return inquiriesMenu
	case LevelGrades:
		return gradesMenu
	case LevelTracks:
		return tracksMenu
	case LevelSubjects:
		if senior {
			return subjectsSeniorMenu
		}
		return subjectsJuniorMenu
	case LevelLanguage:
		return languageMenu
	case LevelMaterials:
		return materialsMenu
	default:
		return rootMenu
	}
}

package pipeline

import (
	"os"

	"github.com/minios-linux/stringsync/android"
	"github.com/minios-linux/stringsync/lockfile"
	"github.com/minios-linux/stringsync/merge"
)

// LocaleStatus summarizes one locale file against the English source.
type LocaleStatus struct {
	Lang   string
	Path   string
	Exists bool
	// Total is the number of distinct translatable English names.
	Total int
	// Translated counts those present in the locale file.
	Translated int
	// Missing are the translatable English names absent from the file.
	Missing []string
	// Stale are translations whose English text changed since they were
	// made, according to the lock file.
	Stale []string
}

// Percent returns the translated share of Total, 0-100.
func (s LocaleStatus) Percent() int {
	if s.Total == 0 {
		return 100
	}
	return s.Translated * 100 / s.Total
}

// Status reports every language in langs. Nothing is written. lf may be
// nil, in which case no stale strings are reported.
func Status(resDir string, langs []string, lf *lockfile.LockFile, root string) ([]LocaleStatus, error) {
	source, err := android.Load(android.SourceStringsXMLPath(resDir))
	if err != nil {
		return nil, err
	}

	// A name defined twice is one string; the first definition wins.
	sourceText := make(map[string]string)
	for _, e := range source.Entries() {
		if _, seen := sourceText[e.Name]; e.Translatable && !seen {
			sourceText[e.Name] = e.Value
		}
	}
	total := len(sourceText)

	out := make([]LocaleStatus, 0, len(langs))
	for _, lang := range langs {
		path := android.StringsXMLPath(resDir, lang)
		st := LocaleStatus{Lang: lang, Path: path, Total: total}
		if _, err := os.Stat(path); err == nil {
			st.Exists = true
		}

		doc, err := android.Load(path)
		if err != nil {
			return nil, err
		}
		for _, e := range merge.Missing(source, doc) {
			st.Missing = append(st.Missing, e.Name)
		}
		st.Translated = total - len(st.Missing)

		if lf != nil {
			st.Stale = lf.Stale(lockfile.TargetKey(root, path), sourceText)
		}
		out = append(out, st)
	}
	return out, nil
}

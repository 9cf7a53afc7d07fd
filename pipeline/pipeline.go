// Package pipeline runs a sync: it makes sure every configured key has an
// English label in values/strings.xml, then fills each target locale with
// machine translations of the English strings it is missing.
package pipeline

import (
	"context"
	"time"

	"github.com/minios-linux/stringsync/android"
	"github.com/minios-linux/stringsync/keyfmt"
	"github.com/minios-linux/stringsync/lockfile"
	"github.com/minios-linux/stringsync/merge"
	"github.com/minios-linux/stringsync/translate"
)

// Options controls Run.
type Options struct {
	// ResDir is the Android res directory.
	ResDir string
	// Languages are the target locales, processed in order.
	Languages []string
	// Keys are the snake_case resource names to label in English.
	Keys []string
	// OnlyConfigured restricts translation to Keys. By default every
	// translatable English string a locale is missing is translated.
	OnlyConfigured bool

	// Lock, if set, records the English text each new translation was
	// made from. It is saved after every locale file that is written.
	Lock *lockfile.LockFile
	// Root is the project root that lock file targets are relative to.
	Root string

	// MaxRetries, RetryDelay and RequestDelay are passed to
	// translate.Strings.
	MaxRetries   int
	RetryDelay   time.Duration
	RequestDelay time.Duration
	Verbose      bool

	// OnLocaleStart is called before a locale's strings are translated.
	OnLocaleStart func(lang string, total int)
	// OnProgress is called after each translated string.
	OnProgress func(lang string, done, total int)
	// OnLog emits progress messages.
	OnLog func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

// LocaleResult describes what Run did to one locale file.
type LocaleResult struct {
	Lang string
	Path string
	// Added are the names of the translations appended to the file.
	Added []string
}

// Result describes a completed (or partially completed) run.
type Result struct {
	SourcePath string
	// SourceAdded are the keys newly labelled in the English file.
	SourceAdded []string
	Locales     []LocaleResult
}

type localeDoc struct {
	lang string
	path string
	doc  *android.Document
}

// Run executes the sync:
//
//  1. format the configured keys into English labels;
//  2. load the English document and every target document (a malformed
//     file stops the run here, before anything is written);
//  3. merge the labels into the English document, indent and write it;
//  4. for each locale, translate the English strings it is missing, merge
//     them, indent and write the file, creating its directory if needed.
//
// Nothing is rolled back. If translation fails for a locale, the English
// file and the locales before it are already written; the returned Result
// describes them along with the error. Rerunning is safe because merging
// never duplicates or overwrites an entry.
func Run(ctx context.Context, tr translate.Translator, opts Options) (*Result, error) {
	labels := keyfmt.Labels(opts.Keys)
	entries := make([]android.Entry, len(opts.Keys))
	for i, key := range opts.Keys {
		entries[i] = android.Entry{Name: key, Value: labels[i], Translatable: true}
	}

	res := &Result{SourcePath: android.SourceStringsXMLPath(opts.ResDir)}

	source, err := android.Load(res.SourcePath)
	if err != nil {
		return res, err
	}
	targets := make([]localeDoc, 0, len(opts.Languages))
	for _, lang := range opts.Languages {
		path := android.StringsXMLPath(opts.ResDir, lang)
		doc, err := android.Load(path)
		if err != nil {
			return res, err
		}
		targets = append(targets, localeDoc{lang: lang, path: path, doc: doc})
	}

	res.SourceAdded = merge.Add(source, entries)
	source.Indent()
	if err := source.WriteFile(res.SourcePath); err != nil {
		return res, err
	}
	if len(res.SourceAdded) > 0 {
		opts.log("Added %d English string(s) to %s", len(res.SourceAdded), res.SourcePath)
	} else {
		opts.log("%s is up to date", res.SourcePath)
	}

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		lr, err := syncLocale(ctx, tr, source, t, opts)
		if err != nil {
			return res, err
		}
		res.Locales = append(res.Locales, lr)
	}
	return res, nil
}

func syncLocale(ctx context.Context, tr translate.Translator, source *android.Document, t localeDoc, opts Options) (LocaleResult, error) {
	lr := LocaleResult{Lang: t.lang, Path: t.path}

	missing := merge.Missing(source, t.doc)
	if opts.OnlyConfigured {
		missing = merge.Filter(missing, opts.Keys)
	}

	var translated []android.Entry
	if len(missing) > 0 {
		opts.log("Translating %d string(s) to %s", len(missing), t.lang)
		if opts.OnLocaleStart != nil {
			opts.OnLocaleStart(t.lang, len(missing))
		}
		var err error
		translated, err = translate.Strings(ctx, tr, missing, translate.Options{
			Language:     t.lang,
			MaxRetries:   opts.MaxRetries,
			RetryDelay:   opts.RetryDelay,
			RequestDelay: opts.RequestDelay,
			OnProgress:   opts.OnProgress,
			OnLog:        opts.OnLog,
			Verbose:      opts.Verbose,
		})
		if err != nil {
			return lr, err
		}
	}

	lr.Added = merge.Add(t.doc, translated)
	t.doc.Indent()
	if err := t.doc.WriteFile(t.path); err != nil {
		return lr, err
	}
	if len(lr.Added) > 0 {
		opts.log("Added %d translation(s) to %s", len(lr.Added), t.path)
	} else {
		opts.log("%s is up to date", t.path)
	}

	if opts.Lock != nil {
		if err := recordLock(opts.Lock, opts.Root, source, t.doc, t.path, lr.Added); err != nil {
			return lr, err
		}
	}
	return lr, nil
}

// recordLock stores the source checksums of the added translations and
// forgets keys that are no longer in the locale file.
func recordLock(lf *lockfile.LockFile, root string, source, target *android.Document, path string, added []string) error {
	key := lockfile.TargetKey(root, path)
	for _, name := range added {
		if value, ok := source.Get(name); ok {
			lf.Update(key, name, value)
		}
	}

	var present []string
	for name := range target.Names() {
		present = append(present, name)
	}
	lf.Clean(key, present)
	return lf.Save()
}

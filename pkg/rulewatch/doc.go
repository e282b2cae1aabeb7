// Package rulewatch reloads rule-sets when the files of a rules directory
// change.
//
// A Watcher observes one directory with fsnotify and calls a reload function
// once writes to .yml or .yaml files have been quiet for the debounce
// period. A Holder keeps the value built from the files and swaps it
// atomically, so a failed reload leaves the previous value in place.
//
//	h, err := rulewatch.NewHolder(func() (*useragent.Parser, error) {
//	    return useragent.New(useragent.WithFS(os.DirFS(dir)))
//	})
//	if err != nil {
//	    return err
//	}
//
//	w, err := rulewatch.New(dir, rulewatch.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	go w.Watch(ctx, h.Reload)
//
//	ua, err := h.Load().Parse(r.UserAgent())
package rulewatch

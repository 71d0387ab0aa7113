// Package assets preloads the carousel's slide backgrounds.
//
// The Manager fetches local files and remote images concurrently, bounded by
// Options.MaxConcurrent, and converts each into a terminal thumbnail.
//
// # Basic Usage
//
//	m := assets.NewManager(assets.Options{
//	    BaseDir:       "/etc/sjt",
//	    MaxConcurrent: 4,
//	    Cols:          24,
//	    Rows:          8,
//	}, nil, func(e assets.ProgressEvent) {
//	    log.Println(e.Message)
//	})
//
//	thumbs, err := m.Load(ctx, []assets.Request{
//	    {Index: 0, Ref: "img/slide1.png"},
//	    {Index: 1, Ref: "https://cdn.example.com/slide2.jpg"},
//	})
//
// # Failures
//
// A missing or undecodable image is reported through the progress callback
// at LevelWarning and skipped. Load only fails when ctx is cancelled.
package assets

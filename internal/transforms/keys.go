package transforms

// Result.Data keys written by the built-in transformers.
const (
	DataTitles       = "titles"
	DataSlugs        = "slugs"
	DataFingerprints = "fingerprints"
	DataPageTree     = "pageTree"
	DataPageTrees    = "pageTrees"
)

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLoadID      = "load_id"
	KeyPath        = "path"
	KeyRootDir     = "root_dir"
	KeyDir         = "dir"
	KeyKind        = "kind"
	KeyTransformer = "transformer"
	KeyStage       = "stage"
	KeyIndex       = "index"
	KeyFiles       = "files"
	KeyPages       = "pages"
	KeyMetas       = "metas"
	KeyFolders     = "folders"
	KeyFormat      = "format"
	KeyFile        = "file"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func LoadID(id string) slog.Attr        { return slog.String(KeyLoadID, id) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func RootDir(d string) slog.Attr        { return slog.String(KeyRootDir, d) }
func Dir(d string) slog.Attr            { return slog.String(KeyDir, d) }
func Kind(k string) slog.Attr           { return slog.String(KeyKind, k) }
func Transformer(name string) slog.Attr { return slog.String(KeyTransformer, name) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Index(i int) slog.Attr             { return slog.Int(KeyIndex, i) }
func Files(n int) slog.Attr             { return slog.Int(KeyFiles, n) }
func Pages(n int) slog.Attr             { return slog.Int(KeyPages, n) }
func Metas(n int) slog.Attr             { return slog.Int(KeyMetas, n) }
func Folders(n int) slog.Attr           { return slog.Int(KeyFolders, n) }
func Format(f string) slog.Attr         { return slog.String(KeyFormat, f) }
func File(f string) slog.Attr           { return slog.String(KeyFile, f) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

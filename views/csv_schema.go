package views

// CSVSchema defines the column layout for each flat file the logger
// writes. The actual serialisation lives on the models; this is the
// canonical reference used for validation and documentation.

import "padel-logger/models"

// FileKind identifies a flat file format for schema lookups.
type FileKind int

const (
	// FileDataset is a per-class raw burst dataset: one header row, then
	// 3-decimal sample rows, always an exact multiple of N.
	FileDataset FileKind = iota
	// FileSessionExport is the stroke session export: one row per event
	// in log order, stable columns regardless of which events carry
	// which optional fields.
	FileSessionExport
)

var fileKindNames = map[FileKind]string{
	FileDataset:       "dataset",
	FileSessionExport: "session_export",
}

func (k FileKind) String() string {
	if n, ok := fileKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// DatasetColumns returns the per-class dataset header.
func DatasetColumns() []string {
	return models.Sample{}.CSVHeader()
}

// SessionExportColumns returns the export header for a class set:
// timestamp and class, top confidence, one conf_<class> column per known
// class, then the fixed IMU metric columns.
func SessionExportColumns(classes []string) []string {
	return models.StrokeEvent{}.CSVHeader(classes)
}

package resultfmt

import (
	"io"

	"github.com/iu7-aa/sssp-lab/pkg/writer"
)

// jsonWriter is shared by every caller that serializes a Result; compact
// output matches the reference JSON builder's single-line output.
var jsonWriter = writer.NewJSONWriter[*Result]()

// WriteJSON writes r as compact JSON to w.
func WriteJSON(r *Result, w io.Writer) error {
	return jsonWriter.Write(r, w)
}

// WriteJSONFile writes r as compact JSON to the file at path.
func WriteJSONFile(r *Result, path string) error {
	return jsonWriter.WriteToFile(r, path)
}

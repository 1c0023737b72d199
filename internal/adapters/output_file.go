package adapters

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

const (
	ConstraintsFile = "constraints.list"
	FramesFile      = "frames.list"
	ReportFile      = "layout.report"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteConstraints keeps emission order; constraint order inside a chain is
// meaningful to readers of the list.
func (a OutputFileAdapter) WriteConstraints(records []types.ConstraintRecord) error {
	path, err := a.ensurePath(ConstraintsFile)
	if err != nil {
		return err
	}
	var rows [][]string
	for _, record := range records {
		rows = append(rows, constraintFields(record))
	}
	return writeRows(path, rows)
}

func (a OutputFileAdapter) WriteFrames(frames []types.Frame) error {
	path, err := a.ensurePath(FramesFile)
	if err != nil {
		return err
	}
	ordered := append([]types.Frame(nil), frames...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Element < ordered[j].Element
	})
	var rows [][]string
	for _, frame := range ordered {
		rows = append(rows, []string{
			string(frame.Element),
			formatSpanValue(frame.Horizontal, frame.Horizontal.Position),
			formatSpanValue(frame.Vertical, frame.Vertical.Position),
			formatSpanValue(frame.Horizontal, frame.Horizontal.Size),
			formatSpanValue(frame.Vertical, frame.Vertical.Size),
		})
	}
	return writeRows(path, rows)
}

func (a OutputFileAdapter) WriteReport(report types.LayoutReport) error {
	path, err := a.ensurePath(ReportFile)
	if err != nil {
		return err
	}
	rows := [][]string{{fmt.Sprintf("layout=%s", report.Layout)}}
	for _, chain := range report.Chains {
		placeholders := make([]string, 0, len(chain.Placeholders))
		for _, id := range chain.Placeholders {
			placeholders = append(placeholders, string(id))
		}
		rows = append(rows, []string{
			chain.Name,
			string(chain.Axis),
			strconv.Itoa(chain.Constraints),
			strings.Join(placeholders, ";"),
		})
	}
	return writeRows(path, rows)
}

func constraintFields(record types.ConstraintRecord) []string {
	c := record.Constraint
	source := ""
	if c.Source != nil {
		source = c.Source.String()
	}
	return []string{
		record.Chain,
		c.Target.String(),
		string(c.Relation),
		source,
		types.FormatNumber(c.Multiplier),
		types.FormatNumber(c.Constant),
		types.FormatNumber(float64(c.Priority)),
	}
}

func formatSpanValue(span types.AxisSpan, value float64) string {
	if !span.Known {
		return "?"
	}
	return types.FormatNumber(roundFrameValue(value))
}

// roundFrameValue trims floating point noise from solved positions.
func roundFrameValue(value float64) float64 {
	rounded := math.Round(value*1e6) / 1e6
	if rounded == 0 {
		return 0
	}
	return rounded
}

// writeRows writes comma-separated rows, quoting names that contain a comma
// or a quote. The last row carries no newline.
func writeRows(path string, rows [][]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to encode %s", filepath.Base(path))).
			WithCause(err)
	}
	content := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", filepath.Base(path))).
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}

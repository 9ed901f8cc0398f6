package report

import (
	"encoding/json"
	"fmt"

	"github.com/warp/salary-engine/payroll"
)

// JSONRenderer prints the snapshot as an indented JSON object.
type JSONRenderer struct {
	Indent string
}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{Indent: "  "}
}

func (r *JSONRenderer) Render(e payroll.Employee) (string, error) {
	var (
		b   []byte
		err error
	)
	if r.Indent == "" {
		b, err = json.Marshal(e.Snapshot())
	} else {
		b, err = json.MarshalIndent(e.Snapshot(), "", r.Indent)
	}
	if err != nil {
		return "", fmt.Errorf("render json report: %w", err)
	}
	return string(b), nil
}

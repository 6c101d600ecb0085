package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case HashResult:
		o.printHashResult(v)
	case ProfileResult:
		o.printProfileResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// HashResult pairs a username with its legacy hash
type HashResult struct {
	Username string `json:"username"`
	Hash     int64  `json:"hash"`
}

// ProfileResult carries the raw profile document for a player
type ProfileResult struct {
	Username string `json:"username"`
	Document string `json:"document"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func (o *Output) printHashResult(h HashResult) {
	fmt.Printf("Username: %s\n", h.Username)
	fmt.Printf("Hash: %d\n", h.Hash)
}

func (o *Output) printProfileResult(p ProfileResult) {
	fmt.Printf("Profile for %s:\n", p.Username)
	fmt.Println(p.Document)
}

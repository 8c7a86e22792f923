// Package assembly renders a selection result into one ordered text bundle.
// Serialization preserves selection order exactly (user story first, then
// tier order, then within-tier order) so the primary prompt always leads.
// The assembler performs no I/O; delivering the bundle is the caller's job.
package assembly

import (
	"fmt"
	"strings"

	"github.com/jonathan/context-engine/internal/types"
)

// headerWidth is the width of the separator line above each section.
const headerWidth = 72

// Assemble serializes the selection result into a Bundle. The body of each
// section is the full content or the signature view according to the chosen
// inclusion level; signature-only artifacts without a signature view fall
// back to full content, mirroring the cost estimator's fallback.
func Assemble(result *types.SelectionResult) (*types.Bundle, error) {
	if result == nil || len(result.Included) == 0 {
		return nil, &Error{Message: "cannot assemble an empty selection result"}
	}

	bundle := &types.Bundle{
		Sections:  make([]types.BundleSection, 0, len(result.Included)),
		TotalCost: result.UsedBudget,
	}

	var sb strings.Builder
	for i, inc := range result.Included {
		body := sectionBody(inc)
		section := types.BundleSection{
			ArtifactID: inc.Artifact.ID,
			Kind:       inc.Artifact.Kind,
			Level:      inc.Level,
			Body:       body,
		}
		bundle.Sections = append(bundle.Sections, section)

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sectionHeader(inc))
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	bundle.Text = sb.String()
	return bundle, nil
}

// sectionBody picks the text for an included artifact based on its level.
func sectionBody(inc types.IncludedArtifact) string {
	if inc.Level == types.LevelSignatureOnly && inc.Artifact.HasSignatureView() {
		return inc.Artifact.SignatureView
	}
	return inc.Artifact.FullContent
}

// sectionHeader renders the separator line identifying a section.
func sectionHeader(inc types.IncludedArtifact) string {
	label := fmt.Sprintf("%s [%s, %s]", inc.Artifact.ID, inc.Artifact.Kind, inc.Level)
	rule := strings.Repeat("-", headerWidth)
	return fmt.Sprintf("%s\n-- %s\n%s\n", rule, label, rule)
}

// Error represents an assembly failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

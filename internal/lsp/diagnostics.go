package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"rapcfg/internal/parser"
	"rapcfg/internal/report"
)

// ConvertParseErrors transforms parser errors into LSP diagnostics. Scanner
// positions are 1-based; the protocol wants 0-based line and character.
func ConvertParseErrors(parseErrors []parser.ParseError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, parseErr := range parseErrors {
		length := parseErr.Length
		if length < 1 {
			length = 1
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),
					Character: uint32(parseErr.Position.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(parseErr.Position.Line - 1),
					Character: uint32(parseErr.Position.Column - 1 + length),
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("rapcfg"),
			Message:  parseErr.Message,
		})
	}

	return diagnostics
}

// ConvertCheckDiagnostics maps validation findings onto protocol diagnostics.
func ConvertCheckDiagnostics(diags []report.Diagnostic) []protocol.Diagnostic {
	var out []protocol.Diagnostic

	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case report.Warning:
			severity = protocol.DiagnosticSeverityWarning
		case report.Note:
			severity = protocol.DiagnosticSeverityInformation
		}
		length := d.Length
		if length < 1 {
			length = 1
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(d.Line - 1),
					Character: uint32(d.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(d.Line - 1),
					Character: uint32(d.Column - 1 + length),
				},
			},
			Severity: ptrSeverity(severity),
			Source:   ptrString("rapcfg"),
			Message:  d.Message,
		})
	}

	return out
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

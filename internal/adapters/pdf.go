// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages caps extraction for very large documents to keep parsing
// time bounded.
const maxPDFPages = 50

// extractPDFLines pulls the plain text out of a PDF survey document and
// returns each non-empty line as one raw specialty label.
func extractPDFLines(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	var b strings.Builder
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; a partially extracted survey is
			// still useful input for the review queue.
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no text content extracted from %s", filePath)
	}

	return lines, nil
}

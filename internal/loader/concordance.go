// Package loader ingests batch-job output into the triple store: document
// concordance load files (.dat/.opt) describing the release itself, and CSV
// exports of the extraction and alias jobs.
package loader

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// docIDPrefix identifies production document IDs in the release
// concordance, e.g. "DOJ-OGR-00001234".
const docIDPrefix = "DOJ-OGR-"

// fieldDelimiter separates fields in concordance .dat files.
const fieldDelimiter = 0xFE

// DocumentRecord is one document of the release: a production ID range and
// the PDF it was delivered as.
type DocumentRecord struct {
	DocIDStart string
	DocIDEnd   string
	Filename   string
}

// ImageRef is one page-image reference from an .opt cross-reference file.
type ImageRef struct {
	DocID     string
	Volume    string
	ImagePath string
	Flag      string
}

// ParseDatFile extracts document records from a concordance .dat file. The
// format is positional: fields split on 0xFE, with a begin ID, an end ID
// and a PDF filename per document. Header tokens and unrecognized fields
// are skipped; a document is only emitted once all three parts are seen.
func ParseDatFile(r io.Reader) ([]DocumentRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var (
		documents []DocumentRecord
		current   DocumentRecord
	)
	for _, part := range bytes.Split(content, []byte{fieldDelimiter}) {
		decoded := strings.TrimSpace(string(bytes.ToValidUTF8(part, nil)))
		if decoded == "" || isDatHeaderToken(decoded) {
			continue
		}

		switch {
		case strings.HasPrefix(decoded, docIDPrefix):
			if current.DocIDStart == "" {
				current.DocIDStart = decoded
			} else if current.DocIDEnd == "" {
				current.DocIDEnd = decoded
			}
		case strings.Contains(strings.ToLower(decoded), ".pdf"):
			current.Filename = decoded
			if current.DocIDStart != "" && current.DocIDEnd != "" {
				documents = append(documents, current)
				current = DocumentRecord{}
			}
		}
	}

	return documents, nil
}

func isDatHeaderToken(s string) bool {
	switch s {
	case "Prod Beg", "Prod End", "Filename", "FILE_PATH":
		return true
	}
	return false
}

// ParseOptFile extracts page-image references from an .opt cross-reference
// file, a plain CSV of doc ID, volume, image path and an optional flag.
// Lines with fewer than three fields are skipped.
func ParseOptFile(r io.Reader) ([]ImageRef, error) {
	var images []ImageRef

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), ",")
		if len(parts) < 3 {
			continue
		}
		ref := ImageRef{
			DocID:     parts[0],
			Volume:    parts[1],
			ImagePath: parts[2],
		}
		if len(parts) > 3 {
			ref.Flag = parts[3]
		}
		images = append(images, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

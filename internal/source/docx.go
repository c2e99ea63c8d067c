package source

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxMainPart = "word/document.xml"

// readDocx extracts paragraphs and table rows from a Word document.
func readDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("not a Word document: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxMainPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return docxText(rc)
	}
	return "", errors.New("not a Word document: missing " + docxMainPart)
}

// docxText walks WordprocessingML and returns body paragraphs one per line.
// Each table row becomes one line with its cells joined by " | ". Tables
// nested inside a cell are flattened into that cell's text.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		blocks     []string
		para       strings.Builder
		cellParts  []string
		row        []string
		tableDepth int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", docxMainPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth == 1 {
					row = row[:0]
				}
			case "tc":
				if tableDepth == 1 {
					cellParts = cellParts[:0]
				}
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteString("\t")
			case "br", "cr":
				para.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(para.String())
				if tableDepth > 0 {
					if text != "" {
						cellParts = append(cellParts, collapseSpace(text))
					}
				} else {
					blocks = append(blocks, text)
				}
			case "tc":
				if tableDepth == 1 {
					row = append(row, strings.Join(cellParts, " "))
				}
			case "tr":
				if tableDepth == 1 {
					blocks = append(blocks, joinCells(row))
				}
			case "tbl":
				tableDepth--
			}
		}
	}
	return joinBlocks(blocks), nil
}

func joinCells(cells []string) string {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return strings.Join(cells, " | ")
		}
	}
	return ""
}

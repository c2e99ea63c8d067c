package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrNotPresentation is returned when an archive lacks the PresentationML main part.
var ErrNotPresentation = errors.New("pptx: not a presentation")

type xmlRelationships struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xmlPresentation struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type xmlCore struct {
	Title string `xml:"title"`
}

type xmlSlide struct {
	Shapes []xmlShape `xml:"cSld>spTree>sp"`
}

type xmlShape struct {
	Placeholder *struct {
		Type string `xml:"type,attr"`
		Idx  string `xml:"idx,attr"`
	} `xml:"nvSpPr>nvPr>ph"`
	Paragraphs []xmlParagraph `xml:"txBody>p"`
}

type xmlParagraph struct {
	Items []xmlParagraphItem `xml:",any"`
}

type xmlParagraphItem struct {
	XMLName xml.Name
	Props   *xmlRunProps `xml:"rPr"`
	Text    string       `xml:"t"`
}

type xmlRunProps struct {
	Size  int `xml:"sz,attr"`
	Color *struct {
		Val string `xml:"val,attr"`
	} `xml:"solidFill>srgbClr"`
}

// Read opens the .pptx file at name and parses it.
func Read(name string) (*Presentation, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("pptx: open %s: %w", name, err)
	}
	defer zr.Close()
	return decode(&zr.Reader)
}

// Decode parses a .pptx package of the given size.
func Decode(r io.ReaderAt, size int64) (*Presentation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("pptx: %w", err)
	}
	return decode(zr)
}

func decode(zr *zip.Reader) (*Presentation, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	const mainPart = "ppt/presentation.xml"
	if files[mainPart] == nil {
		return nil, ErrNotPresentation
	}

	var pres xmlPresentation
	if err := decodePart(files, mainPart, &pres); err != nil {
		return nil, err
	}
	rels, err := readRels(files, mainPart)
	if err != nil {
		return nil, err
	}

	out := &Presentation{}
	var core xmlCore
	if files["docProps/core.xml"] != nil {
		if err := decodePart(files, "docProps/core.xml", &core); err != nil {
			return nil, err
		}
		out.Title = core.Title
	}

	for i, id := range pres.SlideIDs {
		target, ok := rels[id.RID]
		if !ok {
			return nil, fmt.Errorf("pptx: slide %d: missing relationship %s", i+1, id.RID)
		}
		slide, err := readSlide(files, target)
		if err != nil {
			return nil, fmt.Errorf("pptx: slide %d: %w", i+1, err)
		}
		out.Slides = append(out.Slides, slide)
	}
	return out, nil
}

func readSlide(files map[string]*zip.File, name string) (*Slide, error) {
	var xs xmlSlide
	if err := decodePart(files, name, &xs); err != nil {
		return nil, err
	}

	slide := &Slide{Layout: LayoutTitleAndContent}
	if rels, err := readRels(files, name); err == nil {
		for _, target := range rels {
			if strings.HasSuffix(target, "slideLayout1.xml") {
				slide.Layout = LayoutTitle
			}
		}
	}

	for _, sp := range xs.Shapes {
		if sp.Placeholder == nil {
			continue
		}
		frame := toFrame(sp.Paragraphs)
		switch {
		case sp.Placeholder.Type == "title" || sp.Placeholder.Type == "ctrTitle":
			slide.Title = frame
		case sp.Placeholder.Idx == "1" || sp.Placeholder.Type == "body":
			slide.Body = &frame
		}
	}
	return slide, nil
}

func toFrame(paragraphs []xmlParagraph) TextFrame {
	var frame TextFrame
	for _, xp := range paragraphs {
		var p Paragraph
		for _, item := range xp.Items {
			switch item.XMLName.Local {
			case "r":
				p.Runs = append(p.Runs, Run{Text: item.Text, Font: toFont(item.Props)})
			case "br":
				p.Runs = append(p.Runs, Run{Text: "\n", Font: toFont(item.Props)})
			}
		}
		frame.Paragraphs = append(frame.Paragraphs, p)
	}
	// A frame written without paragraphs reads back as one empty paragraph.
	if len(frame.Paragraphs) == 1 && len(frame.Paragraphs[0].Runs) == 0 {
		frame.Paragraphs = nil
	}
	return frame
}

func toFont(props *xmlRunProps) Font {
	if props == nil {
		return Font{}
	}
	f := Font{Size: float64(props.Size) / 100}
	if props.Color != nil {
		f.Color = strings.ToUpper(props.Color.Val)
	}
	return f
}

// readRels returns the relationships of part as id → resolved part name.
func readRels(files map[string]*zip.File, part string) (map[string]string, error) {
	dir, base := path.Split(part)
	relsName := dir + "_rels/" + base + ".rels"

	var rels xmlRelationships
	if err := decodePart(files, relsName, &rels); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		target := r.Target
		if !strings.HasPrefix(target, "/") {
			target = path.Join(dir, target)
		}
		out[r.ID] = strings.TrimPrefix(target, "/")
	}
	return out, nil
}

func decodePart(files map[string]*zip.File, name string, v any) error {
	f := files[name]
	if f == nil {
		return fmt.Errorf("pptx: missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("pptx: open %s: %w", name, err)
	}
	defer rc.Close()

	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("pptx: parse %s: %w", name, err)
	}
	return nil
}

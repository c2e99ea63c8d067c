package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Maximum run size accepted by PresentationML, in points.
const maxFontSize = 4000

var (
	// ErrNoSlides is returned when writing a presentation without slides.
	ErrNoSlides = errors.New("pptx: presentation has no slides")

	// ErrInvalidFont is returned for font sizes or colors that cannot be encoded.
	ErrInvalidFont = errors.New("pptx: invalid font")
)

type part struct {
	name string
	body string
}

// WriteTo serializes the presentation as a .pptx package. It implements io.WriterTo.
func (p *Presentation) WriteTo(w io.Writer) (int64, error) {
	if len(p.Slides) == 0 {
		return 0, ErrNoSlides
	}
	if err := p.validate(); err != nil {
		return 0, err
	}

	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}
	created = created.UTC().Truncate(time.Second)

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, pt := range p.parts(created) {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     pt.name,
			Method:   zip.Deflate,
			Modified: created,
		})
		if err != nil {
			return cw.n, fmt.Errorf("pptx: create %s: %w", pt.name, err)
		}
		if _, err := io.WriteString(f, pt.body); err != nil {
			return cw.n, fmt.Errorf("pptx: write %s: %w", pt.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("pptx: finish archive: %w", err)
	}
	return cw.n, nil
}

func (p *Presentation) validate() error {
	for i, s := range p.Slides {
		if s == nil {
			return fmt.Errorf("pptx: slide %d is nil", i+1)
		}
		frames := []*TextFrame{&s.Title}
		if s.Body != nil {
			frames = append(frames, s.Body)
		}
		for _, f := range frames {
			for _, para := range f.Paragraphs {
				for _, r := range para.Runs {
					if err := validateFont(r.Font); err != nil {
						return fmt.Errorf("slide %d: %w", i+1, err)
					}
				}
			}
		}
	}
	return nil
}

func validateFont(f Font) error {
	if f.Size < 0 || f.Size > maxFontSize || math.IsNaN(f.Size) {
		return fmt.Errorf("%w: size %v", ErrInvalidFont, f.Size)
	}
	if f.Color != "" {
		if len(f.Color) != 6 {
			return fmt.Errorf("%w: color %q", ErrInvalidFont, f.Color)
		}
		if _, err := strconv.ParseUint(f.Color, 16, 32); err != nil {
			return fmt.Errorf("%w: color %q", ErrInvalidFont, f.Color)
		}
	}
	return nil
}

// parts lists every package part in the order they are written.
// [Content_Types].xml comes first so that streaming readers can find it.
func (p *Presentation) parts(created time.Time) []part {
	n := len(p.Slides)
	parts := []part{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML},
		{"docProps/core.xml", coreXML(p.Title, created)},
		{"docProps/app.xml", appXML(n)},
		{"ppt/presentation.xml", presentationXML(n)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", titleLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRelsXML},
		{"ppt/slideLayouts/slideLayout2.xml", contentLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", layoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
		{"ppt/presProps.xml", presPropsXML},
		{"ppt/viewProps.xml", viewPropsXML},
		{"ppt/tableStyles.xml", tableStylesXML},
	}
	for i, s := range p.Slides {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(s)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), fmt.Sprintf(slideRelsFormat, layoutNumber(s.Layout))},
		)
	}
	return parts
}

func layoutNumber(l Layout) int {
	if l == LayoutTitle {
		return 1
	}
	return 2
}

func contentTypesXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="` + nsTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="` + ctRels + `"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	override := func(name, ct string) {
		fmt.Fprintf(&b, `<Override PartName="%s" ContentType="%s"/>`, name, ct)
	}
	override("/ppt/presentation.xml", ctPresentation)
	override("/ppt/slideMasters/slideMaster1.xml", ctSlideMaster)
	override("/ppt/slideLayouts/slideLayout1.xml", ctSlideLayout)
	override("/ppt/slideLayouts/slideLayout2.xml", ctSlideLayout)
	for i := 1; i <= slides; i++ {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", i), ctSlide)
	}
	override("/ppt/theme/theme1.xml", ctTheme)
	override("/ppt/presProps.xml", ctPresProps)
	override("/ppt/viewProps.xml", ctViewProps)
	override("/ppt/tableStyles.xml", ctTableStyles)
	override("/docProps/core.xml", ctCoreProps)
	override("/docProps/app.xml", ctExtProps)
	b.WriteString(`</Types>`)
	return b.String()
}

func coreXML(title string, created time.Time) string {
	ts := created.Format("2006-01-02T15:04:05Z")
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(title) + `</dc:title><dc:creator>deckforge</dc:creator><cp:revision>1</cp:revision>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + ts + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func appXML(slides int) string {
	return xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>deckforge</Application><PresentationFormat>On-screen Show (4:3)</PresentationFormat>` +
		fmt.Sprintf(`<Slides>%d</Slides>`, slides) +
		`</Properties>`
}

func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation ` + rootNamespaces + ` saveSubsetFonts="1">`)
	fmt.Fprintf(&b, `<p:sldMasterIdLst><p:sldMasterId id="%d" r:id="rId1"/></p:sldMasterIdLst>`, masterID)
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slides; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, firstSlideID+i, firstSlideRel+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d" type="screen4x3"/>`, slideWidth, slideHeight)
	fmt.Fprintf(&b, `<p:notesSz cx="%d" cy="%d"/>`, slideHeight, slideWidth)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slides int) string {
	var b strings.Builder
	b.WriteString(presentationRelsHead)
	for i := 0; i < slides; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`,
			firstSlideRel+i, relSlide, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slideXML(s *Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld ` + rootNamespaces + `><p:cSld><p:spTree>`)
	b.WriteString(groupShapeProps)

	titleType := "title"
	if s.Layout == LayoutTitle {
		titleType = "ctrTitle"
	}
	writeShape(&b, 2, "Title 1", `<p:ph type="`+titleType+`"/>`, &s.Title)
	if s.Body != nil {
		writeShape(&b, 3, "Content Placeholder 2", `<p:ph idx="1"/>`, s.Body)
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func writeShape(b *strings.Builder, id int, name, placeholder string, frame *TextFrame) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/>`, id, name)
	b.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr>` + placeholder + `</p:nvPr></p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	if len(frame.Paragraphs) == 0 {
		b.WriteString(`<a:p><a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	}
	for _, p := range frame.Paragraphs {
		writeParagraph(b, p)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeParagraph(b *strings.Builder, p Paragraph) {
	b.WriteString(`<a:p>`)
	for _, r := range p.Runs {
		if r.Text == "\n" {
			b.WriteString(`<a:br>`)
			writeRunProps(b, r.Font)
			b.WriteString(`</a:br>`)
			continue
		}
		b.WriteString(`<a:r>`)
		writeRunProps(b, r.Font)
		b.WriteString(`<a:t>` + escape(r.Text) + `</a:t></a:r>`)
	}
	if len(p.Runs) == 0 {
		b.WriteString(`<a:endParaRPr lang="en-US" dirty="0"/>`)
	}
	b.WriteString(`</a:p>`)
}

func writeRunProps(b *strings.Builder, f Font) {
	b.WriteString(`<a:rPr lang="en-US"`)
	if f.Size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, int(math.Round(f.Size*100)))
	}
	b.WriteString(` dirty="0"`)
	if f.Color == "" {
		b.WriteString(`/>`)
		return
	}
	b.WriteString(`><a:solidFill><a:srgbClr val="` + strings.ToUpper(f.Color) + `"/></a:solidFill></a:rPr>`)
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

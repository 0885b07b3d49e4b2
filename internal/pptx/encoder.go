package pptx

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

// Encoder assembles a minimal but valid PowerPoint container by hand: the
// content-types manifest, the package and document relationship parts, the
// presentation part and one part per slide.
type Encoder struct {
	dir string
	log *slog.Logger
}

func NewEncoder(dir string, log *slog.Logger) *Encoder {
	return &Encoder{dir: dir, log: log}
}

const contentTypesHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
    <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
    <Default Extension="xml" ContentType="application/xml"/>
    <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
    <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

const emptySlideRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

// Encode writes the outline as a .pptx file and returns its path. If the
// archive cannot be produced it falls back to a plain-text deliverable; the
// caller always gets a file to send unless even that write fails.
func (e *Encoder) Encode(topic string, outline models.Outline, uid int64) (string, error) {
	path, err := e.encodeArchive(topic, outline, uid)
	if err == nil {
		return path, nil
	}
	if e.log != nil {
		e.log.Error("pptx encode failed, writing fallback", "err", err, "topic", topic)
	}
	return e.Fallback(topic, outline, uid)
}

func (e *Encoder) encodeArchive(topic string, outline models.Outline, uid int64) (path string, err error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create slides dir: %w", err)
	}
	path = e.uniquePath(topic, uid, ".pptx")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create pptx: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	w := zip.NewWriter(f)
	slides := outline.Slides

	var types strings.Builder
	types.WriteString(contentTypesHeader)
	for i := range slides {
		fmt.Fprintf(&types, "    <Override PartName=\"/ppt/slides/slide%d.xml\" ContentType=\"application/vnd.openxmlformats-officedocument.presentationml.slide+xml\"/>\n", i+1)
	}
	types.WriteString("</Types>")
	if err = writePart(w, "[Content_Types].xml", types.String()); err != nil {
		return "", err
	}

	if err = writePart(w, "_rels/.rels", rootRels); err != nil {
		return "", err
	}

	var rels strings.Builder
	rels.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n<Relationships xmlns=\"http://schemas.openxmlformats.org/package/2006/relationships\">\n")
	for i := range slides {
		fmt.Fprintf(&rels, "    <Relationship Id=\"rId%d\" Type=\"http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide\" Target=\"slides/slide%d.xml\"/>\n", i+1, i+1)
	}
	rels.WriteString("</Relationships>")
	if err = writePart(w, "ppt/_rels/presentation.xml.rels", rels.String()); err != nil {
		return "", err
	}

	var pres strings.Builder
	pres.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n")
	pres.WriteString("<p:presentation xmlns:p=\"http://schemas.openxmlformats.org/presentationml/2006/main\"\n")
	pres.WriteString("                xmlns:r=\"http://schemas.openxmlformats.org/officeDocument/2006/relationships\">\n")
	pres.WriteString("    <p:sldMasterIdLst/>\n    <p:sldIdLst>\n")
	for i := range slides {
		fmt.Fprintf(&pres, "        <p:sldId id=\"%d\" r:id=\"rId%d\"/>\n", 256+i, i+1)
	}
	pres.WriteString("    </p:sldIdLst>\n    <p:sldSz cx=\"9144000\" cy=\"6858000\"/>\n    <p:notesSz cx=\"6858000\" cy=\"9144000\"/>\n</p:presentation>")
	if err = writePart(w, "ppt/presentation.xml", pres.String()); err != nil {
		return "", err
	}

	for i, slide := range slides {
		if err = writePart(w, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(slide)); err != nil {
			return "", err
		}
		if err = writePart(w, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), emptySlideRels); err != nil {
			return "", err
		}
	}

	if err = w.Close(); err != nil {
		return "", fmt.Errorf("close pptx archive: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("close pptx file: %w", err)
	}
	return path, nil
}

func slideXML(slide models.Slide) string {
	var points strings.Builder
	for _, p := range slide.Points {
		fmt.Fprintf(&points, "\n                <a:p><a:r><a:t>• %s</a:t></a:r></a:p>", XMLEscape(p))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
    <p:cSld><p:spTree>
        <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
        <p:grpSpPr/>
        <p:sp>
            <p:nvSpPr><p:cNvPr id="2" name="Title"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>
            <p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>
                <a:p><a:r><a:rPr lang="uz-UZ" b="1"/><a:t>%s</a:t></a:r></a:p>
            </p:txBody>
        </p:sp>
        <p:sp>
            <p:nvSpPr><p:cNvPr id="3" name="Content"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph idx="1"/></p:nvPr></p:nvSpPr>
            <p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>%s
            </p:txBody>
        </p:sp>
    </p:spTree></p:cSld>
</p:sld>`, XMLEscape(slide.Title), points.String())
}

func writePart(w *zip.Writer, name, content string) error {
	part, err := w.Create(name)
	if err != nil {
		return fmt.Errorf("create part %s: %w", name, err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	return nil
}

// Fallback writes a plain-text deliverable listing whatever outline content
// is available, or just the topic and a timestamp. The user never walks away
// empty-handed after the model has produced a response.
func (e *Encoder) Fallback(topic string, outline models.Outline, uid int64) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create slides dir: %w", err)
	}
	path := e.uniquePath(topic, uid, ".txt")

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nTime: %s\n", topic, time.Now().Format(time.RFC3339))
	for i, slide := range outline.Slides {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, slide.Title)
		for _, p := range slide.Points {
			fmt.Fprintf(&b, "   - %s\n", p)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write fallback: %w", err)
	}
	return path, nil
}

// uniquePath derives the filename from the topic, with the account id, a
// timestamp and a random token so concurrent requests for the same topic
// never collide.
func (e *Encoder) uniquePath(topic string, uid int64, ext string) string {
	name := fmt.Sprintf("%s_%d_%d_%s%s", safeTopic(topic), uid, time.Now().Unix(), uuid.NewString()[:8], ext)
	return filepath.Join(e.dir, name)
}

const maxTopicPrefix = 30

func safeTopic(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ' ' {
			b.WriteRune(r)
		}
		if b.Len() >= maxTopicPrefix {
			break
		}
	}
	safe := strings.TrimSpace(b.String())
	safe = strings.ReplaceAll(safe, " ", "_")
	if safe == "" {
		safe = "presentation"
	}
	return safe
}

// XMLEscape replaces the five reserved markup characters. Model output goes
// straight into slide XML, so a raw '&' or '<' would corrupt the container.
func XMLEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

package contextfile

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"meeting-minutes/internal/app/logging"
	"meeting-minutes/internal/app/util/files"
)

// ErrorPrefix starts the text returned in place of an unreadable context file.
const ErrorPrefix = "Error reading context file: "

// Reader extracts plain text from meeting context documents.
type Reader struct {
	logger *zap.Logger
}

func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logging.OrNop(logger)}
}

// Read returns the trimmed text of the .docx, .pdf or plain text file at path.
// Read failures never abort a job: the error is logged and its message is
// returned as the context text.
func (r *Reader) Read(path string) string {
	text, err := r.read(path)
	if err != nil {
		r.logger.Error("Context file reading error", zap.String("file", filepath.Base(path)), zap.Error(err))
		return ErrorPrefix + err.Error()
	}
	return strings.TrimSpace(text)
}

func (r *Reader) read(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		r.logger.Info("Processing Word document (docx)")
		return readDocx(path)
	case ".pdf":
		r.logger.Info("Processing PDF file")
		return readPDF(path)
	default:
		r.logger.Info("Processing as text file")
		return files.ReadTextFile(path)
	}
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func readDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return documentText(rc)
	}
	return "", fmt.Errorf("%s: word/document.xml not found", filepath.Base(path))
}

// documentText collects the text runs of a WordprocessingML body, one line
// per paragraph.
func documentText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
}

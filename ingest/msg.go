package ingest

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/unicode"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// MAPI property streams inside an Outlook .msg compound file. Stream names
// are "__substg1.0_" + 4-digit property id + 4-digit type (001F = UTF-16LE
// string, 001E = 8-bit string, 0102 = binary).
const (
	msgBodyUnicode   = "__substg1.0_1000001F"
	msgBodyAnsi      = "__substg1.0_1000001E"
	attachPrefix     = "__attach_version1.0_#"
	attachDataBin    = "__substg1.0_37010102"
	attachLongName   = "__substg1.0_3707001F"
	attachShortName  = "__substg1.0_3704001F"
	attachMimeTag    = "__substg1.0_370E001F"
)

type msgAttachment struct {
	longName  string
	shortName string
	mimeTag   string
	content   []byte
}

// parseMsgFile reads an Outlook .msg file: the message body from its MAPI
// body property stream and one staged file per attachment storage.
func parseMsgFile(data []byte) (*ParsedEmail, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var bodyUnicode, bodyAnsi []byte
	attachments := map[string]*msgAttachment{}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		storage := attachStorage(entry.Path)
		switch {
		case storage != "":
			att := attachments[storage]
			if att == nil {
				att = &msgAttachment{}
				attachments[storage] = att
			}
			switch entry.Name {
			case attachDataBin:
				att.content = readStream(entry)
			case attachLongName:
				att.longName = decodeUTF16(readStream(entry))
			case attachShortName:
				att.shortName = decodeUTF16(readStream(entry))
			case attachMimeTag:
				att.mimeTag = decodeUTF16(readStream(entry))
			}
		case entry.Name == msgBodyUnicode:
			bodyUnicode = readStream(entry)
		case entry.Name == msgBodyAnsi:
			bodyAnsi = readStream(entry)
		}
	}

	parsed := &ParsedEmail{}
	if len(bodyUnicode) > 0 {
		parsed.Body = decodeUTF16(bodyUnicode)
	} else {
		parsed.Body = string(bodyAnsi)
	}

	// Attachment storages are named __attach_version1.0_#00000000,
	// #00000001, ... so sorting the storage names reproduces message order.
	names := make([]string, 0, len(attachments))
	for name := range attachments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		att := attachments[name]
		if len(att.content) == 0 {
			continue
		}
		filename := att.longName
		if filename == "" {
			filename = att.shortName
		}
		if filename == "" {
			filename = name
		}
		contentType := att.mimeTag
		if contentType == "" {
			contentType = genericMimeType
		}
		parsed.Attachments = append(parsed.Attachments, models.StagedFile{
			Name:        filename,
			ContentType: contentType,
			Data:        att.content,
		})
	}
	return parsed, nil
}

// attachStorage returns the attachment storage name an entry belongs to, or
// "" for entries outside attachment storages.
func attachStorage(path []string) string {
	for _, p := range path {
		if strings.HasPrefix(p, attachPrefix) {
			return p
		}
	}
	return ""
}

func readStream(entry *mscfb.File) []byte {
	b, err := io.ReadAll(entry)
	if err != nil {
		return nil
	}
	return b
}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeUTF16(b []byte) string {
	decoded, err := utf16Decoder.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(decoded), "\x00")
}

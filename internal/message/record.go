package message

import (
	"encoding/xml"
	"errors"
)

var (
	// ErrParse reports input that is not a well-formed XML document.
	ErrParse = errors.New("malformed message document")
	// ErrSchema reports a well-formed document that is not a message.
	ErrSchema = errors.New("message does not match schema")
)

const (
	FieldTo        = "To"
	FieldFrom      = "From"
	FieldTimestamp = "Timestamp"
	FieldTitle     = "Title"
	FieldBody      = "Body"
)

// Record is one accepted message. Timestamp holds the exact lexical form
// received so that identity comparisons see the original representation.
type Record struct {
	To        string
	From      string
	Timestamp string
	Title     string
	Body      string
}

type wireMessage struct {
	XMLName xml.Name   `xml:"Message"`
	Header  wireHeader `xml:"Header"`
}

type wireHeader struct {
	To        string `xml:"To"`
	From      string `xml:"From"`
	Timestamp string `xml:"Timestamp"`
	Title     string `xml:"Title"`
	Body      string `xml:"Body"`
}

type wireMessages struct {
	XMLName  xml.Name      `xml:"Messages"`
	Messages []wireMessage `xml:"Message"`
}

func (r Record) wire() wireMessage {
	return wireMessage{Header: wireHeader{
		To:        r.To,
		From:      r.From,
		Timestamp: r.Timestamp,
		Title:     r.Title,
		Body:      r.Body,
	}}
}

// Canonical returns the serialization two records are compared by: equal
// bytes means duplicate messages.
func (r Record) Canonical() []byte {
	out, err := xml.Marshal(r.wire())
	if err != nil {
		// Only string fields are marshalled; this cannot fail.
		panic(err)
	}
	return out
}

// Day returns the calendar date of the timestamp as DD.MM.YYYY, or "" when
// the timestamp cannot be parsed.
func (r Record) Day() string {
	ts, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return ""
	}
	return NormalizeDay(ts)
}

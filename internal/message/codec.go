package message

import (
	"encoding/xml"
	"fmt"

	"mqbroker/internal/constants"
)

// EncodeMessages renders records as a <Messages> document preceded by the
// XML declaration.
func EncodeMessages(records []Record) ([]byte, error) {
	doc := wireMessages{Messages: make([]wireMessage, 0, len(records))}
	for _, rec := range records {
		doc.Messages = append(doc.Messages, rec.wire())
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}

	return append([]byte(constants.XMLDeclaration+"\n"), out...), nil
}

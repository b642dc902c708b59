// Package twiml renders the small XML call-control markup returned to the
// telephony provider: speak a sentence, record with a callback, bridge to
// a number, play a file, end the call.
package twiml

import (
	"encoding/xml"
	"fmt"
)

type Verb interface {
	verb()
}

type Say struct {
	XMLName xml.Name `xml:"Say"`
	Message string   `xml:",chardata"`
}

type Record struct {
	XMLName   xml.Name `xml:"Record"`
	Action    string   `xml:"action,attr"`
	Method    string   `xml:"method,attr"`
	PlayBeep  bool     `xml:"playBeep,attr"`
	Timeout   int      `xml:"timeout,attr"`
	MaxLength int      `xml:"maxLength,attr"`
}

type Dial struct {
	XMLName  xml.Name `xml:"Dial"`
	CallerID string   `xml:"callerId,attr,omitempty"`
	Number   string   `xml:"Number"`
}

type Play struct {
	XMLName xml.Name `xml:"Play"`
	URL     string   `xml:",chardata"`
}

type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

func (Say) verb()    {}
func (Record) verb() {}
func (Dial) verb()   {}
func (Play) verb()   {}
func (Hangup) verb() {}

type Response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []Verb
}

func NewResponse(verbs ...Verb) *Response {
	return &Response{Verbs: verbs}
}

// Render produces the full XML document, header included.
func (r *Response) Render() (string, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal twiml response: %w", err)
	}
	return xml.Header + string(body), nil
}

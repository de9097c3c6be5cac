// Package infotable reads holdings out of the informationTable XML embedded
// into a 13F-HR full text submission.
package infotable

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Child element positions inside of an infoTable entry: nameOfIssuer,
// titleOfClass, cusip, value, shrsOrPrnAmt{sshPrnamt, sshPrnamtType}.
const (
	idxName = iota
	idxTitleOfClass
	idxCUSIP
	idxValue
	idxShares
)

const idxSharesAmount = 0

var (
	ErrNoInformationTable = errors.New("informationTable not found")
	ErrUnexpectedLayout   = errors.New("unexpected infoTable layout")

	tableRegexp = regexp.MustCompile(`<informationTable[\s\S]*</informationTable>`)
)

type Security struct {
	Name   string `json:"name"`
	CUSIP  string `json:"cusip"`
	Shares uint64 `json:"shares"`
}

// Extract returns the span from the first opening informationTable tag up to
// the last closing one.
func Extract(text string) (string, error) {
	loc := tableRegexp.FindStringIndex(text)
	if loc == nil {
		return "", ErrNoInformationTable
	}
	return text[loc[0]:loc[1]], nil
}

func Parse(fragment string) ([]Security, error) {
	doc, err := xmlquery.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse informationTable: %w", err)
	}

	root := firstElement(doc)
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrUnexpectedLayout)
	}

	var securities []Security
	for i, entry := range elements(root) {
		s, err := securityFromNode(entry)
		if err != nil {
			return nil, fmt.Errorf("infoTable #%d: %w", i, err)
		}
		securities = append(securities, s)
	}
	return securities, nil
}

func ParseText(text string) ([]Security, error) {
	fragment, err := Extract(text)
	if err != nil {
		return nil, err
	}
	return Parse(fragment)
}

// securityFromNode is the only place which knows the infoTable layout.
func securityFromNode(entry *xmlquery.Node) (Security, error) {
	children := elements(entry)
	if len(children) <= idxShares {
		return Security{}, fmt.Errorf("%w: got %d elements, want > %d",
			ErrUnexpectedLayout, len(children), idxShares)
	}

	amounts := elements(children[idxShares])
	if len(amounts) <= idxSharesAmount {
		return Security{}, fmt.Errorf("%w: empty <%s>", ErrUnexpectedLayout,
			children[idxShares].Data)
	}

	s := Security{
		Name:  children[idxName].InnerText(),
		CUSIP: children[idxCUSIP].InnerText(),
	}

	amount := strings.TrimSpace(amounts[idxSharesAmount].InnerText())
	shares, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return Security{}, fmt.Errorf("failed parse %q as shares: %w", amount, err)
	}
	s.Shares = shares

	return s, nil
}

func elements(n *xmlquery.Node) []*xmlquery.Node {
	var nodes []*xmlquery.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

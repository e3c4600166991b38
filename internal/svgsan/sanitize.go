// Package svgsan removes script execution vectors from SVG markup:
// <script>/<foreignObject> elements, event-handler attributes, dangerous
// href targets, and @import rules inside <style> blocks. Sanitization is
// idempotent — running it twice produces the same bytes as running it once.
package svgsan

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/hackclub/imgopt/internal/errs"
)

var disallowedElements = map[string]bool{
	"script":        true,
	"foreignobject": true,
}

var dangerousHrefPrefixes = []string{
	"javascript:",
	"data:text/html",
	"vbscript:",
}

// Sanitize parses markup as XML and re-emits it with disallowed content
// removed. A parse failure raises errs.MalformedSvgError rather than
// silently passing unsafe or truncated markup through.
func Sanitize(markup []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(markup))

	var out bytes.Buffer
	enc := xml.NewEncoder(&out)

	skipDepth := 0
	styleDepth := 0
	var styleBuf bytes.Buffer
	for {
		tok, err := dec.Token()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, &errs.MalformedSvgError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(localName(t.Name))
			if disallowedElements[name] {
				skipDepth++
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if name == "style" {
				styleDepth++
				styleBuf.Reset()
			}
			cleaned := filterAttrs(t)
			if err := enc.EncodeToken(cleaned); err != nil {
				return nil, fmt.Errorf("svgsan: encode start element: %w", err)
			}
		case xml.EndElement:
			name := strings.ToLower(localName(t.Name))
			if disallowedElements[name] {
				skipDepth--
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if name == "style" && styleDepth > 0 {
				styleDepth--
				filtered, cssErr := stripCSSImports(styleBuf.String())
				if cssErr != nil {
					filtered = styleBuf.String() // malformed CSS: leave text untouched rather than fail the whole document
				}
				if err := enc.EncodeToken(xml.CharData(filtered)); err != nil {
					return nil, fmt.Errorf("svgsan: encode style text: %w", err)
				}
			}
			if err := enc.EncodeToken(t); err != nil {
				return nil, fmt.Errorf("svgsan: encode end element: %w", err)
			}
		case xml.CharData:
			if skipDepth > 0 {
				continue
			}
			if styleDepth > 0 {
				styleBuf.Write(t)
				continue
			}
			if err := enc.EncodeToken(t); err != nil {
				return nil, fmt.Errorf("svgsan: encode chardata: %w", err)
			}
		default:
			if skipDepth > 0 || styleDepth > 0 {
				continue
			}
			if err := enc.EncodeToken(tok); err != nil {
				return nil, fmt.Errorf("svgsan: encode token: %w", err)
			}
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("svgsan: flush: %w", err)
	}
	return out.Bytes(), nil
}

func localName(n xml.Name) string {
	if i := strings.LastIndexByte(n.Local, ':'); i >= 0 {
		return n.Local[i+1:]
	}
	return n.Local
}

func filterAttrs(t xml.StartElement) xml.StartElement {
	name := strings.ToLower(localName(t.Name))
	kept := make([]xml.Attr, 0, len(t.Attr))
	for _, a := range t.Attr {
		attrName := strings.ToLower(localName(a.Name))
		if strings.HasPrefix(attrName, "on") {
			continue
		}
		if (attrName == "href" || attrName == "xlink:href") && isDangerousHref(a.Value) {
			continue
		}
		if name == "style" {
			continue // style element text content is filtered separately below
		}
		kept = append(kept, a)
	}
	t.Attr = kept
	return t
}

func isDangerousHref(v string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(v))
	for _, prefix := range dangerousHrefPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// stripCSSImports removes @import rules from a <style> block's text using
// aymerick/douceur's CSS parser (backed by gorilla/css) rather than a regex,
// so nested @media blocks and string-quoted urls are handled structurally.
func stripCSSImports(styleText string) (string, error) {
	stylesheet, err := css.NewParser(styleText).ParseStylesheet()
	if err != nil {
		return "", fmt.Errorf("svgsan: css parse: %w", err)
	}
	var kept []*css.Rule
	for _, rule := range stylesheet.Rules {
		if rule.Kind == css.AtRule && strings.EqualFold(rule.Name, "@import") {
			continue
		}
		kept = append(kept, rule)
	}
	stylesheet.Rules = kept
	return stylesheet.String(), nil
}

package scanner

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// SaleKind selects a section of the item shop sale page.
type SaleKind int

const (
	Weekly SaleKind = iota
	Daily
)

var (
	ErrNoSale = errors.New("sale section not found")

	pricePattern = regexp.MustCompile(`\(([0-9]+)v\)`)
)

// Item is one entry of a sale.
type Item struct {
	Name  string
	Price int // V-Bucks
	Image string
}

// Sale is a parsed sale section.
type Sale struct {
	Title string
	Items []Item
}

// ParseSale reads the sale page and extracts the weekly or daily section. Relative image
// paths are resolved against baseURL. now supplies the year for the daily date header.
func ParseSale(r io.Reader, kind SaleKind, baseURL string, now time.Time) (*Sale, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sale page: %w", err)
	}

	sections := findAll(doc, func(n *html.Node) bool { return hasClass(n, "sale__items") })
	if int(kind) >= len(sections) {
		return nil, ErrNoSale
	}
	section := sections[kind]

	sale := &Sale{Title: "Weekly Sale"}
	imgMatch := func(n *html.Node) bool { return n.Data == "img" }
	if kind == Daily {
		sale.Title = dailyTitle(section, now)
		imgMatch = func(n *html.Node) bool { return n.Data == "img" && hasClass(n, "col") }
	}

	var images []string
	for _, img := range findAll(section, func(n *html.Node) bool { return n.Type == html.ElementNode && imgMatch(n) }) {
		if src := attr(img, "src"); src != "" {
			images = append(images, resolve(baseURL, src))
		}
	}

	for i, strong := range findAll(section, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "strong" }) {
		label := strings.TrimSpace(strings.ReplaceAll(text(strong.Parent), "\n", " "))
		m := pricePattern.FindStringSubmatchIndex(label)
		if m == nil {
			continue
		}
		price, _ := strconv.Atoi(label[m[2]:m[3]])
		item := Item{
			Name:  strings.TrimSpace(label[:m[0]] + label[m[1]:]),
			Price: price,
		}
		if i < len(images) {
			item.Image = images[i]
		}
		sale.Items = append(sale.Items, item)
	}
	return sale, nil
}

// dailyTitle turns the "02 Jan" header before the section into "January 02, 2006".
func dailyTitle(section *html.Node, now time.Time) string {
	for n := section.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type != html.ElementNode || !hasClass(n, "row") {
			continue
		}
		h2 := findAll(n, func(c *html.Node) bool { return c.Type == html.ElementNode && c.Data == "h2" })
		if len(h2) == 0 {
			break
		}
		raw := strings.TrimSpace(text(h2[0]))
		date, err := time.Parse("02 Jan 2006", fmt.Sprintf("%s %d", raw, now.Year()))
		if err != nil {
			return raw
		}
		return date.Format("January 02, 2006")
	}
	return "Daily Sale"
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func resolve(baseURL, src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(src, "/")
}

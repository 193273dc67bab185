// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"errors"
	"testing"
)

const sampleArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Large Language Models Are Zero-Shot Reasoners</title>
    <published>2023-01-17T14:00:00Z</published>
    <author><name>Takeshi Kojima</name></author>
    <author><name>Shixiang Shane Gu</name></author>
  </entry>
</feed>`

func TestParseArxivFeed(t *testing.T) {
	md, err := arxivParser("2301.07041")([]byte(sampleArxivFeed))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if md.Title != "Large Language Models Are Zero-Shot Reasoners" {
		t.Errorf("Title = %q", md.Title)
	}
	if md.Year != 2023 {
		t.Errorf("Year = %d, want 2023", md.Year)
	}
	if md.URL != "http://arxiv.org/abs/2301.07041v1" {
		t.Errorf("URL = %q", md.URL)
	}
	if md.Identifier != "2301.07041" {
		t.Errorf("Identifier = %q", md.Identifier)
	}
	if len(md.Authors) != 2 || md.Authors[0] != "Takeshi Kojima" {
		t.Errorf("Authors = %v", md.Authors)
	}
}

func TestParseArxivFeedWithoutNamespace(t *testing.T) {
	// Feed variants without the Atom namespace must still parse.
	bare := `<feed><entry><id>http://arxiv.org/abs/1706.03762v5</id>
	<title>Attention Is All You Need</title>
	<published>2017-06-12T00:00:00Z</published>
	<author><name>Ashish Vaswani</name></author></entry></feed>`

	md, err := arxivParser("1706.03762")([]byte(bare))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if md.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", md.Title)
	}
}

func TestParseArxivFeedMissingID(t *testing.T) {
	body := `<feed><entry>
	<title>Untracked Preprint</title>
	<published>2020-05-01T00:00:00Z</published>
	</entry></feed>`

	md, err := arxivParser("2005.00001")([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// URL falls back to the canonical abs page.
	if md.URL != "https://arxiv.org/abs/2005.00001" {
		t.Errorf("URL = %q, want fallback abs URL", md.URL)
	}
}

func TestParseArxivEmptyFeedIsNotFound(t *testing.T) {
	_, err := arxivParser("9999.99999")([]byte(`<feed></feed>`))
	if !errors.Is(err, errNotFound) {
		t.Errorf("err = %v, want errNotFound", err)
	}
}

func TestParseArxivErrorEntryIsNotFound(t *testing.T) {
	body := `<feed><entry>
	<id>http://arxiv.org/api/errors#incorrect_id</id>
	<title>Error</title>
	</entry></feed>`

	_, err := arxivParser("bad-id")([]byte(body))
	if !errors.Is(err, errNotFound) {
		t.Errorf("err = %v, want errNotFound", err)
	}
}

func TestParseArxivMalformedXML(t *testing.T) {
	_, err := arxivParser("2301.07041")([]byte(`<feed><entry>`))
	if err == nil || errors.Is(err, errNotFound) {
		t.Fatalf("err = %v, want parse error", err)
	}
}

package verify

import (
	"strings"
	"testing"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

func textBlocks(text string) []model.ContentBlock {
	return []model.ContentBlock{{Type: model.BlockTypeText, Text: text}}
}

func TestClaimNormalizer_ParsesArray(t *testing.T) {
	normalizer := NewClaimNormalizer()

	text := `Here is what I found:
[
  {"title": "Sinkhole on Baker Road", "summary": "Road closed.", "url": "https://dnj.com/a", "category": "infrastructure", "severity": "high", "location": "Blackman"},
  {"title": "Boil water notice", "summary": "Advisory issued.", "url": "https://dnj.com/b", "category": "mystery", "severity": "extreme"}
]`

	claims := normalizer.Normalize(textBlocks(text), nil, model.FeedRequest{City: "Murfreesboro"})

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}

	if claims[0].Category != model.CategoryInfrastructure || claims[0].Severity != model.SeverityHigh {
		t.Errorf("expected category/severity preserved, got %s/%s", claims[0].Category, claims[0].Severity)
	}
	if claims[0].Location != "Blackman" {
		t.Errorf("explicit location should be kept, got %q", claims[0].Location)
	}
	if claims[0].Verified {
		t.Error("parsed claims must arrive unverified")
	}

	// Out-of-vocabulary values fall back to defaults.
	if claims[1].Category != model.CategoryOther {
		t.Errorf("unknown category should normalize to other, got %q", claims[1].Category)
	}
	if claims[1].Severity != model.SeverityMedium {
		t.Errorf("unknown severity should normalize to medium, got %q", claims[1].Severity)
	}
	if claims[1].Location != "Murfreesboro" {
		t.Errorf("missing location should default to the request city, got %q", claims[1].Location)
	}

	if claims[0].ID == claims[1].ID {
		t.Error("claim ids must be unique within a response")
	}
}

func TestClaimNormalizer_StripsCodeFences(t *testing.T) {
	normalizer := NewClaimNormalizer()

	text := "```json\n[{\"title\": \"A\", \"url\": \"https://x.com/a\"}]\n```"

	claims := normalizer.Normalize(textBlocks(text), nil, model.FeedRequest{City: "Nashville"})

	if len(claims) != 1 {
		t.Fatalf("expected 1 claim from fenced array, got %d", len(claims))
	}
	if claims[0].Title != "A" {
		t.Errorf("unexpected title %q", claims[0].Title)
	}
}

func TestClaimNormalizer_NoResultsSentinel(t *testing.T) {
	normalizer := NewClaimNormalizer()

	citations := []model.Citation{{Title: "C", URL: "https://x.com/c", SourceDomain: "x.com"}}
	claims := normalizer.Normalize(textBlocks(model.NoResultsSentinel), citations, model.FeedRequest{City: "Nashville"})

	if len(claims) != 0 {
		t.Errorf("sentinel answer must short-circuit to an empty list even with citations present, got %d claims", len(claims))
	}
}

func TestClaimNormalizer_FallbackSynthesisFromCitations(t *testing.T) {
	normalizer := NewClaimNormalizer()

	citations := []model.Citation{
		{Title: "Sinkhole report", URL: "https://dnj.com/a", Snippet: "A sinkhole opened.", SourceDomain: "dnj.com", PublishedDate: "1 day ago"},
		{Title: "Well notice", URL: "https://dnj.com/b", SourceDomain: "dnj.com"},
	}

	text := "I found two relevant stories about the sinkhole and the well notice, both from the Daily News Journal."
	claims := normalizer.Normalize(textBlocks(text), citations, model.FeedRequest{City: "Murfreesboro"})

	if len(claims) != 2 {
		t.Fatalf("expected one synthesized claim per citation, got %d", len(claims))
	}

	if !claims[0].Verified {
		t.Error("synthesized claims must arrive pre-verified")
	}
	if claims[0].VerificationNote == "" {
		t.Error("synthesized claims must carry a note about their provenance")
	}
	if claims[0].Summary != "A sinkhole opened." {
		t.Errorf("summary should come from the snippet, got %q", claims[0].Summary)
	}
	if !strings.Contains(claims[1].Summary, "source") {
		t.Errorf("missing snippet should produce the read-source placeholder, got %q", claims[1].Summary)
	}
	if claims[0].Location != "Murfreesboro" {
		t.Errorf("synthesized location should default to the request city, got %q", claims[0].Location)
	}
}

func TestClaimNormalizer_MalformedArrayReturnsEmpty(t *testing.T) {
	normalizer := NewClaimNormalizer()

	citations := []model.Citation{{Title: "C", URL: "https://x.com/c", SourceDomain: "x.com"}}
	text := `[{"title": "broken",` // array located but unparsable

	claims := normalizer.Normalize(textBlocks(text+"]"), citations, model.FeedRequest{City: "Nashville"})

	if len(claims) != 0 {
		t.Errorf("malformed array must degrade to an empty list, got %d claims", len(claims))
	}
}

func TestClaimNormalizer_NoArrayNoCitations(t *testing.T) {
	normalizer := NewClaimNormalizer()

	claims := normalizer.Normalize(textBlocks("nothing structured here"), nil, model.FeedRequest{City: "Nashville"})

	if len(claims) != 0 {
		t.Errorf("expected empty list, got %d claims", len(claims))
	}
}

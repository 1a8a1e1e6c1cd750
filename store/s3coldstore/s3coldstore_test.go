package s3coldstore

import "testing"

func TestIsRef(t *testing.T) {
	cases := map[string]bool{
		"s3cold://bucket/prefix/key": true,
		"plain inline bytes":         false,
		"":                           false,
	}
	for raw, want := range cases {
		if got := IsRef([]byte(raw)); got != want {
			t.Errorf("IsRef(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseRef(t *testing.T) {
	bucket, key, err := parseRef("s3cold://my-bucket/values/abc123")
	if err != nil {
		t.Fatalf("parseRef failed: %v", err)
	}
	if bucket != "my-bucket" || key != "values/abc123" {
		t.Errorf("parseRef = (%q, %q), want (%q, %q)", bucket, key, "my-bucket", "values/abc123")
	}
}

func TestParseRefMalformed(t *testing.T) {
	for _, ref := range []string{"not-a-ref", "s3cold://", "s3cold://bucket-only"} {
		if _, _, err := parseRef(ref); err == nil {
			t.Errorf("parseRef(%q): expected error, got nil", ref)
		}
	}
}

func TestObjectKey(t *testing.T) {
	withPrefix := &ColdStore{prefix: "values"}
	if got := withPrefix.objectKey("root/abc"); got != "values/root/abc" {
		t.Errorf("objectKey with prefix = %q, want %q", got, "values/root/abc")
	}

	noPrefix := &ColdStore{}
	if got := noPrefix.objectKey("root/abc"); got != "root/abc" {
		t.Errorf("objectKey without prefix = %q, want %q", got, "root/abc")
	}
}

func TestPutReferenceRoundtrip(t *testing.T) {
	cs := &ColdStore{bucket: "brrr-cold", prefix: "values"}
	ref := refPrefix + cs.bucket + "/" + cs.objectKey("deadbeef")

	bucket, key, err := parseRef(ref)
	if err != nil {
		t.Fatalf("parseRef failed: %v", err)
	}
	if bucket != cs.bucket {
		t.Errorf("bucket = %q, want %q", bucket, cs.bucket)
	}
	if key != "values/deadbeef" {
		t.Errorf("key = %q, want %q", key, "values/deadbeef")
	}
	if !IsRef([]byte(ref)) {
		t.Errorf("IsRef(%q) = false, want true", ref)
	}
}

package domain

import "testing"

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"notice.PDF":       "pdf",
		"scan.jpeg":        "jpeg",
		"letter.txt":       "txt",
		"archive.tar.gz":   "gz",
		"no-extension":     "",
		"trailing-dot.":    "",
		"dir/nested/a.Png": "png",
	}
	for filename, want := range cases {
		if got := FileExtension(filename); got != want {
			t.Fatalf("FileExtension(%q) = %q, want %q", filename, got, want)
		}
	}
}

func TestCheckSize(t *testing.T) {
	if err := CheckSize(MaxUploadBytes, 0); err != nil {
		t.Fatalf("size at the limit must pass, got %v", err)
	}
	if err := CheckSize(MaxUploadBytes+1, 0); !IsKind(err, ErrSizeLimitExceeded) {
		t.Fatalf("expected size limit error, got %v", err)
	}
	if err := CheckSize(101, 100); !IsKind(err, ErrSizeLimitExceeded) {
		t.Fatalf("expected error against custom limit, got %v", err)
	}
}

func TestDetectKind(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		data []byte
		want ArtifactKind
	}{
		{"jpg image", "jpg", []byte{0xff, 0xd8, 0xff}, KindImage},
		{"png image", "png", []byte{0x89, 0x50}, KindImage},
		{"tiff image", "tiff", []byte{0x49, 0x49}, KindImage},
		{"pdf", "pdf", []byte("%PDF-1.4"), KindPDF},
		{"plain text", "txt", []byte("hello world"), KindPlainText},
		{"bare url in txt", "txt", []byte("https://example.gov/scheme\n"), KindURL},
		{"url with surrounding prose", "txt", []byte("see https://example.gov for details"), KindPlainText},
		{"unknown extension with text", "md", []byte("# notes"), KindPlainText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectKind(tc.ext, tc.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("DetectKind(%q) = %q, want %q", tc.ext, got, tc.want)
			}
		})
	}
}

func TestDetectKindRejectsBinaryOutsideKnownTypes(t *testing.T) {
	_, err := DetectKind("bin", []byte{0xff, 0xfe, 0x00, 0x80})
	if !IsKind(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected unsupported encoding error, got %v", err)
	}
}

func TestIsBareURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.gov":              true,
		"http://example.gov/path?x=1":      true,
		"  https://example.gov  \n":        true,
		"ftp://example.gov":                false,
		"visit https://example.gov today":  false,
		"https://example.gov second-token": false,
		"":                                 false,
		"just some text":                   false,
	}
	for text, want := range cases {
		if got := IsBareURL(text); got != want {
			t.Fatalf("IsBareURL(%q) = %v, want %v", text, got, want)
		}
	}
}

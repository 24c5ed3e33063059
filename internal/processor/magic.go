package processor

import "bytes"

// FileType is a content type recognised from a file's leading bytes
type FileType struct {
	Extension string // Canonical extension without the dot
	MimeType  string
}

type signature struct {
	fileType FileType
	match    func(data []byte) bool
}

// sniffLen bounds how far into the data the table ever looks (tar header).
const sniffLen = 262

// prefix matches when data starts with every given signature byte
func prefix(sig ...byte) func([]byte) bool {
	return func(data []byte) bool {
		return bytes.HasPrefix(data, sig)
	}
}

// at matches sig at a fixed offset
func at(offset int, sig []byte) func([]byte) bool {
	return func(data []byte) bool {
		if len(data) < offset+len(sig) {
			return false
		}
		return bytes.Equal(data[offset:offset+len(sig)], sig)
	}
}

func allOf(matchers ...func([]byte) bool) func([]byte) bool {
	return func(data []byte) bool {
		for _, m := range matchers {
			if !m(data) {
				return false
			}
		}
		return true
	}
}

func anyOf(matchers ...func([]byte) bool) func([]byte) bool {
	return func(data []byte) bool {
		for _, m := range matchers {
			if m(data) {
				return true
			}
		}
		return false
	}
}

// ftyp matches ISO base media files whose major brand is one of brands
func ftyp(brands ...string) func([]byte) bool {
	return func(data []byte) bool {
		if len(data) < 12 || !bytes.Equal(data[4:8], []byte("ftyp")) {
			return false
		}
		brand := string(data[8:12])
		for _, b := range brands {
			if brand == b {
				return true
			}
		}
		return false
	}
}

// anyFtyp matches any ISO base media file not claimed by a more specific brand
func anyFtyp(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp"))
}

func riff(form string) func([]byte) bool {
	return allOf(prefix('R', 'I', 'F', 'F'), at(8, []byte(form)))
}

func ebml(docType string) func([]byte) bool {
	return func(data []byte) bool {
		if !bytes.HasPrefix(data, []byte{0x1A, 0x45, 0xDF, 0xA3}) {
			return false
		}
		head := data
		if len(head) > 64 {
			head = head[:64]
		}
		return docType == "" || bytes.Contains(head, []byte(docType))
	}
}

// signatures is ordered: the first match wins, so narrower checks sit above
// the broader ones sharing a prefix.
var signatures = []signature{
	// images
	{FileType{"png", "image/png"}, prefix(0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A)},
	{FileType{"jpg", "image/jpeg"}, prefix(0xFF, 0xD8, 0xFF)},
	{FileType{"gif", "image/gif"}, anyOf(prefix('G', 'I', 'F', '8', '7', 'a'), prefix('G', 'I', 'F', '8', '9', 'a'))},
	{FileType{"webp", "image/webp"}, riff("WEBP")},
	{FileType{"tif", "image/tiff"}, anyOf(prefix('I', 'I', 0x2A, 0x00), prefix('M', 'M', 0x00, 0x2A))},
	{FileType{"ico", "image/x-icon"}, prefix(0x00, 0x00, 0x01, 0x00)},
	{FileType{"psd", "image/vnd.adobe.photoshop"}, prefix('8', 'B', 'P', 'S')},
	{FileType{"avif", "image/avif"}, ftyp("avif", "avis")},
	{FileType{"heic", "image/heic"}, ftyp("heic", "heix", "heim", "heis", "mif1", "msf1")},
	{FileType{"bmp", "image/bmp"}, prefix('B', 'M')},

	// audio
	{FileType{"wav", "audio/wav"}, riff("WAVE")},
	{FileType{"flac", "audio/x-flac"}, prefix('f', 'L', 'a', 'C')},
	{FileType{"ogg", "audio/ogg"}, prefix('O', 'g', 'g', 'S')},
	{FileType{"mid", "audio/midi"}, prefix('M', 'T', 'h', 'd')},
	{FileType{"m4a", "audio/x-m4a"}, ftyp("M4A ", "M4B ")},
	{FileType{"mp3", "audio/mpeg"}, anyOf(prefix('I', 'D', '3'), prefix(0xFF, 0xFB), prefix(0xFF, 0xF3), prefix(0xFF, 0xF2))},

	// video
	{FileType{"avi", "video/vnd.avi"}, riff("AVI ")},
	{FileType{"webm", "video/webm"}, ebml("webm")},
	{FileType{"mkv", "video/x-matroska"}, ebml("")},
	{FileType{"mov", "video/quicktime"}, ftyp("qt  ")},
	{FileType{"mp4", "video/mp4"}, anyFtyp},
	{FileType{"flv", "video/x-flv"}, prefix('F', 'L', 'V', 0x01)},

	// documents
	{FileType{"pdf", "application/pdf"}, prefix('%', 'P', 'D', 'F')},
	{FileType{"rtf", "application/rtf"}, prefix('{', '\\', 'r', 't', 'f')},
	{FileType{"ps", "application/postscript"}, prefix('%', '!')},
	{FileType{"wasm", "application/wasm"}, prefix(0x00, 'a', 's', 'm')},

	// archives
	{FileType{"zip", "application/zip"}, prefix('P', 'K', 0x03, 0x04)},
	{FileType{"gz", "application/gzip"}, prefix(0x1F, 0x8B, 0x08)},
	{FileType{"bz2", "application/x-bzip2"}, prefix('B', 'Z', 'h')},
	{FileType{"xz", "application/x-xz"}, prefix(0xFD, '7', 'z', 'X', 'Z', 0x00)},
	{FileType{"7z", "application/x-7z-compressed"}, prefix('7', 'z', 0xBC, 0xAF, 0x27, 0x1C)},
	{FileType{"rar", "application/x-rar-compressed"}, prefix('R', 'a', 'r', '!', 0x1A, 0x07)},
	{FileType{"zst", "application/zstd"}, prefix(0x28, 0xB5, 0x2F, 0xFD)},
	{FileType{"tar", "application/x-tar"}, at(257, []byte("ustar"))},
}

// DetectFileType inspects the leading bytes of data. The second return value
// is false when no signature matches.
func DetectFileType(data []byte) (FileType, bool) {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	for _, s := range signatures {
		if s.match(data) {
			return s.fileType, true
		}
	}
	return FileType{}, false
}

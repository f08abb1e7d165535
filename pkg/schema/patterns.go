package schema

import "strings"

// Special widget hints inferred from well-known patterns.
const (
	WidgetColor        = "Color"
	WidgetEmail        = "Email"
	WidgetImageFile    = "ImageFile"
	WidgetVideoFile    = "VideoFile"
	WidgetAudioFile    = "AudioFile"
	WidgetDataFile     = "DataFile"
	WidgetTextFile     = "TextFile"
	WidgetDocumentFile = "DocumentFile"
	WidgetFile         = "File"
)

var (
	imageExtensions    = []string{"png", "jpg", "jpeg", "gif", "webp", "bmp", "tiff", "svg", "ico", "heic", "avif", "raw", "psd"}
	videoExtensions    = []string{"mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "mpeg", "mpg"}
	audioExtensions    = []string{"mp3", "wav", "aac", "flac", "ogg", "m4a"}
	dataExtensions     = []string{"csv", "xlsx", "xls", "json", "xml", "yaml", "yml"}
	textExtensions     = []string{"txt", "md", "log", "rtf"}
	documentExtensions = []string{"pdf", "doc", "docx", "odt", "ppt", "pptx", "odp", "xls", "xlsx", "ods"}
)

func extensionPattern(exts []string) string {
	return `(?i)^.+\.(` + strings.Join(exts, "|") + `)$`
}

// Patterns recognised by the widget-hint registry.
var (
	ColorPattern    = `^#(?:[0-9a-fA-F]{3}){1,2}$`
	EmailPattern    = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ImagePattern    = extensionPattern(imageExtensions)
	VideoPattern    = extensionPattern(videoExtensions)
	AudioPattern    = extensionPattern(audioExtensions)
	DataPattern     = extensionPattern(dataExtensions)
	TextPattern     = extensionPattern(textExtensions)
	DocumentPattern = extensionPattern(documentExtensions)
	AnyFilePattern  = `^.+$`
)

const emailPatternMessage = "Must be a valid email address (e.g., name@example.com)"

var specialWidgets = map[string]string{
	ColorPattern:    WidgetColor,
	EmailPattern:    WidgetEmail,
	ImagePattern:    WidgetImageFile,
	VideoPattern:    WidgetVideoFile,
	AudioPattern:    WidgetAudioFile,
	DataPattern:     WidgetDataFile,
	TextPattern:     WidgetTextFile,
	DocumentPattern: WidgetDocumentFile,
	AnyFilePattern:  WidgetFile,
}

var fileExtensions = map[string][]string{
	WidgetImageFile:    imageExtensions,
	WidgetVideoFile:    videoExtensions,
	WidgetAudioFile:    audioExtensions,
	WidgetDataFile:     dataExtensions,
	WidgetTextFile:     textExtensions,
	WidgetDocumentFile: documentExtensions,
}

// SpecialWidget returns the widget hint registered for pattern. Matching is
// exact on the pattern text.
func SpecialWidget(pattern string) (string, bool) {
	hint, ok := specialWidgets[pattern]
	return hint, ok
}

// FileAccept returns the accept attribute for a file widget hint, such as
// ".png,.jpg". The generic File hint and unknown hints return "".
func FileAccept(hint string) string {
	exts, ok := fileExtensions[hint]
	if !ok {
		return ""
	}
	parts := make([]string, len(exts))
	for i, ext := range exts {
		parts[i] = "." + ext
	}
	return strings.Join(parts, ",")
}

// Color is a string restricted to hex colours.
func Color() Type {
	return Annotated(String(), Pattern(ColorPattern))
}

// Email is a string restricted to email addresses.
func Email() Type {
	return Annotated(String(),
		Pattern(EmailPattern),
		PatternMessage(emailPatternMessage),
		Placeholder("name@example.com"),
	)
}

func ImageFile() Type    { return Annotated(String(), Pattern(ImagePattern)) }
func VideoFile() Type    { return Annotated(String(), Pattern(VideoPattern)) }
func AudioFile() Type    { return Annotated(String(), Pattern(AudioPattern)) }
func DataFile() Type     { return Annotated(String(), Pattern(DataPattern)) }
func TextFile() Type     { return Annotated(String(), Pattern(TextPattern)) }
func DocumentFile() Type { return Annotated(String(), Pattern(DocumentPattern)) }
func File() Type         { return Annotated(String(), Pattern(AnyFilePattern)) }

// Alias resolves a type alias by its lower-case name, as used by declaration
// files and struct tags.
func Alias(name string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "color":
		return Color(), true
	case "email":
		return Email(), true
	case "image", "image_file":
		return ImageFile(), true
	case "video", "video_file":
		return VideoFile(), true
	case "audio", "audio_file":
		return AudioFile(), true
	case "data", "data_file":
		return DataFile(), true
	case "text", "text_file":
		return TextFile(), true
	case "document", "document_file":
		return DocumentFile(), true
	case "file":
		return File(), true
	}
	return Type{}, false
}

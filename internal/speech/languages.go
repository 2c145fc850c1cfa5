package speech

// Language is a locale the speech collaborators can work in.
type Language struct {
	Code string
	Name string
}

// SupportedLanguages lists the locales offered for recognition and
// synthesis.
var SupportedLanguages = []Language{
	{Code: "en-US", Name: "English (US)"},
	{Code: "en-GB", Name: "English (UK)"},
	{Code: "en-AU", Name: "English (AU)"},
	{Code: "en-IN", Name: "English (India)"},
	{Code: "es-ES", Name: "Spanish (Spain)"},
	{Code: "es-MX", Name: "Spanish (Mexico)"},
	{Code: "fr-FR", Name: "French"},
	{Code: "de-DE", Name: "German"},
	{Code: "it-IT", Name: "Italian"},
	{Code: "pt-BR", Name: "Portuguese (Brazil)"},
	{Code: "pt-PT", Name: "Portuguese (Portugal)"},
	{Code: "zh-CN", Name: "Chinese (Mandarin)"},
	{Code: "ja-JP", Name: "Japanese"},
	{Code: "ko-KR", Name: "Korean"},
	{Code: "hi-IN", Name: "Hindi"},
	{Code: "ta-IN", Name: "Tamil"},
	{Code: "ar-SA", Name: "Arabic"},
	{Code: "ru-RU", Name: "Russian"},
}

// IsSupported reports whether the locale code is in the supported set.
func IsSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

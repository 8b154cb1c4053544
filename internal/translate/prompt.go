package translate

import "fmt"

// systemPrompt is the fixed instruction describing subtitle-translation
// conventions for the target language.
func systemPrompt(targetLang string) string {
	name := langName(targetLang)
	return fmt.Sprintf(
		"You are a professional subtitle translator working with English to %s translation.\n"+
			"Follow these subtitle translation principles:\n"+
			"1. Keep translations concise and readable at subtitle speed\n"+
			"2. Maintain natural conversational flow in the target language\n"+
			"3. Preserve the original tone (formal/informal/humorous)\n"+
			"4. Ensure translations fit well in subtitle format\n"+
			"5. Consider cultural context while staying true to the original meaning\n"+
			"6. Use appropriate %s language conventions and punctuation\n"+
			"7. Maintain consistency across connected dialogue",
		name, name)
}

func langName(code string) string {
	names := map[string]string{
		"fa": "Persian",
		"en": "English",
		"ko": "Korean",
		"ja": "Japanese",
		"zh": "Chinese",
		"es": "Spanish",
		"fr": "French",
		"de": "German",
		"pt": "Portuguese",
		"it": "Italian",
		"ru": "Russian",
		"ar": "Arabic",
		"hi": "Hindi",
		"tr": "Turkish",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

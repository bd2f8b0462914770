// Package translate holds the built-in interface phrase tables. Phrases are
// looked up by key for a target language and fall back to English when the
// language or the key is missing.
package translate

var translations = map[string]map[string]string{
	"en": {
		"settings":          "Settings",
		"volume":            "Volume",
		"music":             "Music",
		"soundEffects":      "Sound Effects",
		"fontSize":          "Font Size",
		"small":             "Small",
		"medium":            "Medium",
		"large":             "Large",
		"dyslexicMode":      "Dyslexic-friendly Mode",
		"holdSpacebar":      "Hold Spacebar",
		"recording":         "Recording...",
		"catSpeaking":       "Cat is speaking...",
		"interfaceLanguage": "Interface Language",
		"aiPersonality":     "AI Personality",
		"simple":            "Simple",
		"funny":             "Funny",
		"educational":       "Educational",
		"simpleDesc":        "Clear, concise responses",
		"funnyDesc":         "Playful, humorous responses",
		"educationalDesc":   "Informative, detailed responses",
		"loading":           "Loading...",
		"sendMessage":       "Send Message",
		"chatInFrench":      "Chat en français",
		"chatInEnglish":     "Chat in English",
		"chatInSpanish":     "Chatear en español",
	},
	"fr": {
		"settings":          "Paramètres",
		"volume":            "Volume",
		"music":             "Musique",
		"soundEffects":      "Effets sonores",
		"fontSize":          "Taille de police",
		"small":             "Petit",
		"medium":            "Moyen",
		"large":             "Grand",
		"dyslexicMode":      "Mode pour dyslexiques",
		"holdSpacebar":      "Maintenez la barre d'espace",
		"recording":         "Enregistrement...",
		"catSpeaking":       "Le chat parle...",
		"interfaceLanguage": "Langue de l'interface",
		"aiPersonality":     "Personnalité de l'IA",
		"simple":            "Simple",
		"funny":             "Drôle",
		"educational":       "Éducatif",
		"simpleDesc":        "Réponses claires et concises",
		"funnyDesc":         "Réponses ludiques et humoristiques",
		"educationalDesc":   "Réponses informatives et détaillées",
		"loading":           "Chargement...",
		"sendMessage":       "Envoyer le message",
		"chatInFrench":      "Chat en français",
		"chatInEnglish":     "Chat en anglais",
		"chatInSpanish":     "Chat en espagnol",
	},
	"es": {
		"settings":          "Configuración",
		"volume":            "Volumen",
		"music":             "Música",
		"soundEffects":      "Efectos de sonido",
		"fontSize":          "Tamaño de fuente",
		"small":             "Pequeño",
		"medium":            "Mediano",
		"large":             "Grande",
		"dyslexicMode":      "Modo amigable para disléxicos",
		"holdSpacebar":      "Mantén la barra espaciadora",
		"recording":         "Grabando...",
		"catSpeaking":       "El gato está hablando...",
		"interfaceLanguage": "Idioma de la interfaz",
		"aiPersonality":     "Personalidad de la IA",
		"simple":            "Simple",
		"funny":             "Gracioso",
		"educational":       "Educativo",
		"simpleDesc":        "Respuestas claras y concisas",
		"funnyDesc":         "Respuestas lúdicas y humorísticas",
		"educationalDesc":   "Respuestas informativas y detalladas",
		"loading":           "Cargando...",
		"sendMessage":       "Enviar mensaje",
		"chatInFrench":      "Chatear en francés",
		"chatInEnglish":     "Chatear en inglés",
		"chatInSpanish":     "Chatear en español",
	},
	"de": {
		"settings":          "Einstellungen",
		"volume":            "Lautstärke",
		"music":             "Musik",
		"soundEffects":      "Soundeffekte",
		"fontSize":          "Schriftgröße",
		"small":             "Klein",
		"medium":            "Mittel",
		"large":             "Groß",
		"dyslexicMode":      "Legasthenie-freundlicher Modus",
		"holdSpacebar":      "Leertaste halten",
		"recording":         "Aufnahme...",
		"catSpeaking":       "Katze spricht...",
		"interfaceLanguage": "Schnittstellensprache",
		"aiPersonality":     "KI-Persönlichkeit",
		"simple":            "Einfach",
		"funny":             "Lustig",
		"educational":       "Lehrreich",
		"simpleDesc":        "Klare, prägnante Antworten",
		"funnyDesc":         "Spielerische, humorvolle Antworten",
		"educationalDesc":   "Informative, detaillierte Antworten",
		"loading":           "Wird geladen...",
		"sendMessage":       "Nachricht senden",
		"chatInFrench":      "Auf Französisch chatten",
		"chatInEnglish":     "Auf Englisch chatten",
		"chatInSpanish":     "Auf Spanisch chatten",
	},
}

// Phrase returns the phrase for key in the given language. Unsupported
// languages and missing keys fall back to English, and an unknown key is
// returned as-is so callers always get something renderable.
func Phrase(key string, language string) string {
	table, ok := translations[language]
	if !ok {
		table = translations["en"]
	}

	if phrase, ok := table[key]; ok {
		return phrase
	}
	if phrase, ok := translations["en"][key]; ok {
		return phrase
	}
	return key
}

// IsLanguageAvailable reports whether a phrase table exists for the language.
func IsLanguageAvailable(language string) bool {
	_, ok := translations[language]
	return ok
}

// Languages lists the language codes that have phrase tables.
func Languages() []string {
	codes := make([]string, 0, len(translations))
	for code := range translations {
		codes = append(codes, code)
	}
	return codes
}

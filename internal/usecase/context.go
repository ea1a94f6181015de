package usecase

import (
	"strings"

	"genki-chat/internal/domain"
)

// lengthInstructions maps the stored preference to the instruction the
// agent receives. The mapping is fixed; unknown values never reach here
// because reads normalize them to medium.
var lengthInstructions = map[domain.ResponseLength]string{
	domain.ResponseShort:  "Keep your reply brief, 1-2 lines.",
	domain.ResponseMedium: "Keep your reply moderate, 2-4 lines.",
	domain.ResponseLong:   "Give a detailed reply, 4-8 lines.",
}

// buildProfileContext prepends stored preferences to the outbound
// message as labeled blocks: user info, response instructions, then the
// original message. A nil profile leaves the message untouched; an
// all-empty profile contributes only the instruction block.
func buildProfileContext(message string, profile *domain.UserProfile) string {
	if profile == nil {
		return message
	}

	var blocks []string
	if info := userInfoBlock(*profile); info != "" {
		blocks = append(blocks, info)
	}

	instruction, ok := lengthInstructions[domain.NormalizeResponseLength(string(profile.ResponseLength))]
	if !ok {
		instruction = lengthInstructions[domain.ResponseMedium]
	}
	blocks = append(blocks, strings.Join([]string{
		"[Response Instructions]",
		instruction,
		"Match your tone and content to the user's attributes.",
	}, "\n"))

	blocks = append(blocks, "[User Message]\n"+message)

	return strings.Join(blocks, "\n\n")
}

func userInfoBlock(p domain.UserProfile) string {
	lines := []string{"[User Info]"}
	if p.Name != "" {
		lines = append(lines, "Name: "+p.Name)
	}
	if p.AgeBracket != "" {
		lines = append(lines, "Age bracket: "+p.AgeBracket)
	}
	if p.Occupation != "" {
		lines = append(lines, "Occupation: "+p.Occupation)
	}
	if p.Gender != "" && p.Gender != domain.GenderPreferNotToSay {
		lines = append(lines, "Gender: "+p.Gender)
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

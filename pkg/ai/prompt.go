package ai

import "fmt"

// SystemPrompt pins the model to the summary schema understood by the decoder
const SystemPrompt = `You are a professional meeting assistant. Analyze the provided meeting transcript and return ONLY a valid JSON object. Do not add markdown, code fences, comments or explanations.

The JSON must follow this exact structure:
{
  "summary": "<2-4 sentence paragraph summarizing the meeting>",
  "key_points": [
    "<plain string point 1>",
    "<plain string point 2>"
  ],
  "action_items": [
    {
      "task": "<what needs to be done>",
      "owner": "<person responsible, or 'Unassigned'>",
      "deadline": "<natural language deadline like 'Tonight 9 PM' or 'Not Mentioned'>",
      "priority": "<exactly one of: High, Medium, Low>"
    }
  ]
}

STRICT RULES:
- Output ONLY the raw JSON. No fences, no // comments, no extra text.
- summary must be a plain string on one line, no newlines inside the string.
- key_points must be a flat array of plain strings, NOT objects.
- deadline must be natural language (e.g. 'Tomorrow 6 PM', 'Friday', 'Not Mentioned'). Never use ISO dates or placeholders like 'YYYY-MM-XX'.
- priority must be exactly 'High', 'Medium', or 'Low'.
- owner must be a name or 'Unassigned'.
`

// jsonOnlyReminder is appended for providers without a JSON response mode
const jsonOnlyReminder = "\n\nIMPORTANT: Your entire response must be valid JSON only. No explanations, no markdown."

func userPrompt(transcript string) string {
	return fmt.Sprintf("Transcript:\n%s", transcript)
}

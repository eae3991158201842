package labsummary

const (
	ToolName        = "summarize_lab_report"
	ToolDescription = "Summarize a raw lab report into structured abnormalities using a local model running on the user's GPU. Use this whenever the user provides lab results as text."

	// SystemPrompt instructs the local model to answer with the summary JSON only
	SystemPrompt = `You are a medical lab report summarizer running locally on the user's machine.

You MUST respond with ONLY one valid JSON object. Do not include any explanation,
backticks, markdown, or text outside the JSON. The JSON must have this shape:

{
  "overall_assessment": "<short plain English summary>",
  "notable_abnormal_results": [
    {
      "test": "string",
      "value": "string",
      "unit": "string or null",
      "reference_range": "string or null",
      "severity": "mild|moderate|severe"
    }
  ]
}

If you are unsure about a field, use null. Do NOT invent values.`
)

// chain-of-thought prompt sections of the structured backend
var (
	structuredBackground = []string{
		"- You are a medical lab report summarizer running locally on the user's machine.",
		"- You receive the raw text of one lab report.",
	}
	structuredSteps = []string{
		"- Find the results outside of their reference range.",
		"- For each of them note the test name, value, unit, reference range and severity (mild, moderate or severe).",
		"- Write a short plain English overall assessment.",
	}
	structuredOutput = []string{
		"- If you are unsure about a field, use null.",
		"- Do NOT invent values.",
	}
)

package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/helmcode/review-insights/pkg/model"
	"gopkg.in/yaml.v3"
)

// DisplayResults writes the analysis to w in the requested format.
// Lists are always written, empty ones as [].
func DisplayResults(w io.Writer, analysis *model.ReviewAnalysis, format string) error {
	if analysis == nil {
		return fmt.Errorf("no analysis to display")
	}
	normalized := analysis.Normalized()

	switch format {
	case "json", "":
		return displayJSON(w, &normalized)
	case "yaml":
		return displayYAML(w, &normalized)
	case "human":
		displayHuman(w, &normalized)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: json, yaml, human)", format)
	}
}

func displayJSON(w io.Writer, analysis *model.ReviewAnalysis) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, analysis *model.ReviewAnalysis) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(analysis); err != nil {
		return err
	}
	return enc.Close()
}

func displayHuman(w io.Writer, analysis *model.ReviewAnalysis) {
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)

	sentimentColor := getSentimentColor(analysis.OverallSentiment)
	sentimentColor.Fprintf(w, "📊 OVERALL SENTIMENT: %s\n\n", strings.ToUpper(analysis.OverallSentiment))

	yellow.Fprintln(w, "🔍 KEY INSIGHTS:")
	if len(analysis.Insights) == 0 {
		fmt.Fprintf(w, "   %s\n", color.HiBlackString("none"))
	}
	for i, insight := range analysis.Insights {
		fmt.Fprintf(w, "   %d. %s %s\n", i+1, getSentimentIcon(insight.Sentiment), insight.Phrase)
		fmt.Fprintf(w, "      Sentiment: %s\n", insight.Sentiment)
	}
	fmt.Fprintln(w)

	cyan.Fprintln(w, "💡 ACTIONABLE ITEMS:")
	if len(analysis.ActionableItems) == 0 {
		fmt.Fprintf(w, "   %s\n", color.HiBlackString("none"))
	}
	for i, item := range analysis.ActionableItems {
		fmt.Fprintf(w, "   %d. %s %s\n", i+1, getPriorityIcon(item.Importance), strings.TrimSpace(wrapText(item.Action, 80, "      ")))
		fmt.Fprintf(w, "      Importance: %s\n", item.Importance)
	}
	fmt.Fprintln(w)

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func getSentimentColor(sentiment string) *color.Color {
	switch strings.ToLower(sentiment) {
	case "positive":
		return color.New(color.FgGreen, color.Bold)
	case "negative":
		return color.New(color.FgRed, color.Bold)
	case "mixed", "neutral":
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgWhite, color.Bold)
	}
}

func getSentimentIcon(sentiment string) string {
	switch strings.ToLower(sentiment) {
	case "positive":
		return "🟢"
	case "negative":
		return "🔴"
	case "neutral", "mixed":
		return "🟡"
	default:
		return "⚪"
	}
}

func getPriorityIcon(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "⚡"
	case "medium":
		return "🔹"
	case "low":
		return "▫️"
	default:
		return "•"
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}

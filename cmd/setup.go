package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const defaultBackendURL = "http://localhost:8080/api/transcript"

var envOrder = []string{
	"GOOGLE_CLOUD_PROJECT",
	"GOOGLE_GENAI_API_KEY",
	"GROQ_API_KEY",
	"YOUTUBE_API_KEY",
	"CAPTIONS_BACKEND_URL",
	"PORT",
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Long:  `Configure API keys and the captions backend, and write them to .env.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("YouTube Summarizer Setup"))

	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	steps := []struct {
		name string
		fn   func(map[string]string) error
	}{
		{"Configuring summarizer", configureSummarizer},
		{"Configuring transcripts", configureTranscripts},
		{"Configuring Google Cloud", configureGCP},
	}

	for _, step := range steps {
		if err := step.fn(env); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := writeEnv(f, env); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func configureSummarizer(env map[string]string) error {
	var provider string
	if err := huh.NewSelect[string]().
		Title("Summarizer").
		Options(
			huh.NewOption("Google Gemini (gemini-2.0-flash)", "gemini"),
			huh.NewOption("Groq", "groq"),
		).
		Value(&provider).
		Run(); err != nil {
		return err
	}

	envKey, title, link := "GOOGLE_GENAI_API_KEY", "Gemini API Key", "https://aistudio.google.com/app/apikey"
	if provider == "groq" {
		envKey, title, link = "GROQ_API_KEY", "GROQ API Key", "https://console.groq.com/keys"
		fmt.Println(infoStyle.Render("Set summarizer.provider: groq in config.yaml to use it"))
	}

	var key string
	if err := huh.NewInput().
		Title(title).
		Description(link).
		EchoMode(huh.EchoModePassword).
		Value(&key).
		Validate(required(title)).
		Run(); err != nil {
		return err
	}

	env[envKey] = strings.TrimSpace(key)
	return nil
}

func configureTranscripts(env map[string]string) error {
	backendURL := defaultBackendURL
	var youtubeKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Captions backend URL").
				Description("Answers GET <url>?url=<video url> with {\"transcript\": [...]}").
				Value(&backendURL),
			huh.NewInput().
				Title("YouTube Data API Key (optional)").
				Description("Used to list caption tracks before fetching them").
				Value(&youtubeKey),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if url := strings.TrimSpace(backendURL); url != "" && url != defaultBackendURL {
		env["CAPTIONS_BACKEND_URL"] = url
	}
	if key := strings.TrimSpace(youtubeKey); key != "" {
		env["YOUTUBE_API_KEY"] = key
	}
	return nil
}

func configureGCP(env map[string]string) error {
	var setupGCP bool
	if err := huh.NewConfirm().
		Title("Use Google Secret Manager?").
		Description("Lets the server read API keys from a Google Cloud project").
		Value(&setupGCP).
		Run(); err != nil {
		return err
	}

	if !setupGCP {
		return nil
	}

	if !commandExists("gcloud") {
		fmt.Println(warnStyle.Render("gcloud CLI not found - install from https://cloud.google.com/sdk/docs/install"))
		return nil
	}

	project := getActiveProject()
	if err := huh.NewInput().
		Title("Google Cloud Project ID").
		Value(&project).
		Validate(required("Project ID")).
		Run(); err != nil {
		return err
	}
	project = strings.TrimSpace(project)
	env["GOOGLE_CLOUD_PROJECT"] = project

	err := runWithSpinner("Enabling APIs", func() error {
		return runSetupCmd("gcloud", "services", "enable",
			"secretmanager.googleapis.com",
			"youtube.googleapis.com",
			"--project", project)
	})
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("API enablement failed: %v", err)))
	}

	fmt.Println(infoStyle.Render(`
Reference secrets by name in config.yaml:
  secrets:
    genai_api_key: genai-api-key
    groq_api_key: groq-api-key
    youtube_api_key: youtube-api-key
`))
	return nil
}

func writeEnv(w io.Writer, env map[string]string) error {
	for _, key := range envOrder {
		if val, ok := env[key]; ok && val != "" {
			if _, err := fmt.Fprintf(w, "%s=%s\n", key, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Start the captions backend (optional, YouTube is used as fallback)")
	fmt.Println("  2. Run: ytsummarizer serve")
	fmt.Println("  3. Or: ytsummarizer summarize \"https://www.youtube.com/watch?v=...\"")
}

func getActiveProject() string {
	out, err := exec.Command("gcloud", "config", "get-value", "project").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runSetupCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s", err, stderr.String())
	}
	return nil
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}

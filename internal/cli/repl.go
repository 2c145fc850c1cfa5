package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/kaviyashree6/chatbot/internal/config"
	"github.com/kaviyashree6/chatbot/internal/domain"
	"github.com/kaviyashree6/chatbot/internal/service"
	"github.com/kaviyashree6/chatbot/internal/speech"
)

const historyFileName = ".chatbot_history"

// REPL is the interactive shell. It renders conversations, dispatches
// slash commands and forwards plain input as chat turns. It also acts as
// the Notifier the turn orchestrator reports through.
type REPL struct {
	line    *liner.State
	cfg     *config.Config
	chat    *service.ChatService
	conv    *service.ConversationService
	moods   *service.MoodService
	journal *service.JournalService
	quotes  *service.QuoteService
	speech  *speech.Controller

	mu     sync.Mutex
	crisis bool

	// Index-addressable snapshots from the last listing commands.
	listedConversations []domain.Conversation
	listedJournal       []domain.JournalEntry
	listedQuotes        []domain.SavedQuote
	lastQuote           *domain.Quote
}

// NewREPL builds the shell without its chat orchestrator; the orchestrator
// is attached with SetChat once it has been wired with the shell as its
// notifier.
func NewREPL(cfg *config.Config, conv *service.ConversationService, moods *service.MoodService, journal *service.JournalService, quotes *service.QuoteService, speechCtl *speech.Controller) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &REPL{
		line:    line,
		cfg:     cfg,
		conv:    conv,
		moods:   moods,
		journal: journal,
		quotes:  quotes,
		speech:  speechCtl,
	}
	r.loadHistory()
	return r
}

func (r *REPL) SetChat(chat *service.ChatService) {
	r.chat = chat
}

// Toast prints a transient notification.
func (r *REPL) Toast(message string) {
	fmt.Fprintf(os.Stderr, "[!] %s\n", message)
}

// ShowCrisisBanner raises the sticky crisis banner. It stays up across
// turns until the user navigates away.
func (r *REPL) ShowCrisisBanner() {
	r.mu.Lock()
	r.crisis = true
	r.mu.Unlock()
}

func (r *REPL) dismissCrisisBanner() {
	r.mu.Lock()
	r.crisis = false
	r.mu.Unlock()
}

func (r *REPL) crisisActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.crisis
}

// Run drives the shell until the user quits or the context is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	defer r.close()

	if err := r.conv.Load(ctx, r.cfg.UserID); err != nil {
		return err
	}

	q := r.quotes.Daily()
	fmt.Printf("\nWelcome back. %q - %s\n", q.Text, q.Author)
	fmt.Println("Type a message to chat, or /help for commands.")
	fmt.Println()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if r.crisisActive() {
			fmt.Println("It sounds like you're going through a difficult time.")
			fmt.Println("If you're in crisis, please reach out: call or text 988 (Suicide & Crisis Lifeline).")
		}

		input, err := r.line.Prompt("you> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			// EOF exits cleanly.
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := r.dispatch(ctx, input); quit {
				return nil
			}
			continue
		}

		r.sendTurn(ctx, input)
	}
}

func (r *REPL) sendTurn(ctx context.Context, input string) {
	err := r.chat.SendMessage(ctx, r.cfg.UserID, input)
	switch {
	case err == nil:
		msgs := r.conv.Messages()
		if len(msgs) > 0 {
			r.printMessage(msgs[len(msgs)-1])
		}
	case errors.Is(err, domain.ErrActiveTurn):
		r.Toast("Still replying to your last message")
	case errors.Is(err, domain.ErrEmptyMessage):
		// Blank after trimming; nothing to do.
	default:
		// The orchestrator already toasted; keep the shell alive.
	}
}

// dispatch handles a slash command; it reports whether the shell should
// exit.
func (r *REPL) dispatch(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/quit", "/q", "/exit":
		return true
	case "/help", "/h":
		r.dismissCrisisBanner()
		printHelp()
	case "/new":
		r.dismissCrisisBanner()
		r.conv.StartNew()
		fmt.Println("Started a new chat. Say something to begin.")
	case "/list":
		r.listConversations()
	case "/select":
		r.selectConversation(ctx, args)
	case "/delete":
		r.deleteConversation(ctx, args)
	case "/mood":
		r.moodCommand(ctx, args)
	case "/journal":
		r.journalCommand(ctx, args)
	case "/quote":
		r.quoteCommand(ctx, args)
	case "/speak":
		r.speakCommand(args)
	case "/listen":
		r.listenCommand(ctx)
	case "/stop":
		r.speech.Stop()
	case "/tts":
		r.ttsCommand(args)
	case "/lang":
		r.langCommand(args)
	default:
		fmt.Printf("Unknown command %s. Type /help for commands.\n", command)
	}
	return false
}

func (r *REPL) listConversations() {
	r.listedConversations = r.conv.Conversations()
	if len(r.listedConversations) == 0 {
		fmt.Println("No conversations yet.")
		return
	}
	active := r.conv.Active()
	for i, c := range r.listedConversations {
		marker := " "
		if c.ID == active {
			marker = "*"
		}
		fmt.Printf("%s %2d. %s (%s)\n", marker, i+1, c.Title, c.UpdatedAt.Format("Jan 2 15:04"))
	}
}

func (r *REPL) selectConversation(ctx context.Context, args []string) {
	c, ok := r.pickConversation(args)
	if !ok {
		return
	}
	if err := r.conv.Select(ctx, r.cfg.UserID, c.ID); err != nil {
		r.Toast("Could not open that conversation")
		return
	}
	r.dismissCrisisBanner()
	fmt.Printf("-- %s --\n", c.Title)
	for _, m := range r.conv.Messages() {
		r.printMessage(m)
	}
}

func (r *REPL) deleteConversation(ctx context.Context, args []string) {
	c, ok := r.pickConversation(args)
	if !ok {
		return
	}
	if err := r.conv.Delete(ctx, c.ID); err != nil {
		r.Toast("Could not delete that conversation")
		return
	}
	fmt.Printf("Deleted %q.\n", c.Title)
}

func (r *REPL) pickConversation(args []string) (domain.Conversation, bool) {
	if len(r.listedConversations) == 0 {
		r.listedConversations = r.conv.Conversations()
	}
	if len(args) != 1 {
		fmt.Println("Usage: /select N (run /list first)")
		return domain.Conversation{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(r.listedConversations) {
		fmt.Println("No such conversation number. Run /list.")
		return domain.Conversation{}, false
	}
	return r.listedConversations[n-1], true
}

func (r *REPL) moodCommand(ctx context.Context, args []string) {
	if len(args) == 0 || args[0] == "stats" {
		stats, err := r.moods.Stats(ctx, r.cfg.UserID, config.MoodWindowDays)
		if err != nil {
			r.Toast("Could not load mood stats")
			return
		}
		if stats.Total == 0 {
			fmt.Println("No mood entries in the last week. Log one with /mood <mood> [1-10] [note].")
			return
		}
		fmt.Printf("Last %d days: %d entries, mostly %s, avg intensity %s, %d positive.\n",
			config.MoodWindowDays, stats.Total, stats.Dominant, stats.AverageIntensity, stats.PositiveCount)
		for _, mood := range domain.Emotions {
			if count := stats.Distribution[mood]; count > 0 {
				fmt.Printf("  %-8s %d\n", mood, count)
			}
		}
		return
	}

	mood, ok := domain.ParseEmotion(args[0])
	if !ok {
		fmt.Printf("Unknown mood %q. Moods: %v\n", args[0], domain.Emotions)
		return
	}
	intensity := config.DefaultMoodIntensity
	note := ""
	rest := args[1:]
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			intensity = n
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		note = strings.Join(rest, " ")
	}
	if _, err := r.moods.Log(ctx, r.cfg.UserID, mood, intensity, note); err != nil {
		r.Toast("Could not log mood")
		return
	}
	fmt.Printf("Logged %s (%d).\n", mood, intensity)
}

func (r *REPL) journalCommand(ctx context.Context, args []string) {
	if len(args) == 0 || args[0] == "list" {
		entries, err := r.journal.List(ctx, r.cfg.UserID)
		if err != nil {
			r.Toast("Could not load journal")
			return
		}
		r.listedJournal = entries
		if len(entries) == 0 {
			fmt.Println("Journal is empty. Add gratitude with /journal add <text>.")
			return
		}
		for i, e := range entries {
			fmt.Printf("%2d. %s  %s\n", i+1, e.CreatedAt.Format("Jan 2"), e.Content)
		}
		return
	}

	switch args[0] {
	case "add":
		if _, err := r.journal.Add(ctx, r.cfg.UserID, strings.Join(args[1:], " ")); err != nil {
			if errors.Is(err, domain.ErrEmptyMessage) {
				fmt.Println("Usage: /journal add <text>")
				return
			}
			r.Toast("Could not save journal entry")
			return
		}
		fmt.Println("Saved.")
	case "rm":
		if len(args) != 2 {
			fmt.Println("Usage: /journal rm N (run /journal list first)")
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(r.listedJournal) {
			fmt.Println("No such entry number. Run /journal list.")
			return
		}
		if err := r.journal.Delete(ctx, r.listedJournal[n-1].ID); err != nil {
			r.Toast("Could not delete journal entry")
			return
		}
		fmt.Println("Deleted.")
	default:
		fmt.Println("Usage: /journal [list|add <text>|rm N]")
	}
}

func (r *REPL) quoteCommand(ctx context.Context, args []string) {
	if len(args) == 0 {
		q := r.quotes.Daily()
		r.lastQuote = &q
		fmt.Printf("%q - %s\n", q.Text, q.Author)
		return
	}

	switch args[0] {
	case "fetch":
		q := r.quotes.FetchRemote(ctx)
		r.lastQuote = &q
		fmt.Printf("%q - %s\n", q.Text, q.Author)
	case "random":
		q := r.quotes.Random()
		r.lastQuote = &q
		fmt.Printf("%q - %s\n", q.Text, q.Author)
	case "save":
		if r.lastQuote == nil {
			fmt.Println("Show a quote first with /quote, /quote random or /quote fetch.")
			return
		}
		if _, err := r.quotes.Save(ctx, r.cfg.UserID, *r.lastQuote); err != nil {
			if errors.Is(err, domain.ErrQuoteAlreadySaved) {
				fmt.Println("Already in your collection.")
				return
			}
			r.Toast("Could not save quote")
			return
		}
		fmt.Println("Saved to your collection.")
	case "list":
		saved, err := r.quotes.ListSaved(ctx, r.cfg.UserID)
		if err != nil {
			r.Toast("Could not load saved quotes")
			return
		}
		r.listedQuotes = saved
		if len(saved) == 0 {
			fmt.Println("No saved quotes yet.")
			return
		}
		for i, q := range saved {
			fmt.Printf("%2d. %q - %s\n", i+1, q.Quote, q.Author)
		}
	case "rm":
		if len(args) != 2 {
			fmt.Println("Usage: /quote rm N (run /quote list first)")
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(r.listedQuotes) {
			fmt.Println("No such quote number. Run /quote list.")
			return
		}
		if err := r.quotes.DeleteSaved(ctx, r.listedQuotes[n-1].ID); err != nil {
			r.Toast("Could not delete quote")
			return
		}
		fmt.Println("Deleted.")
	default:
		fmt.Println("Usage: /quote [fetch|random|save|list|rm N]")
	}
}

func (r *REPL) speakCommand(args []string) {
	msgs := r.conv.Messages()
	if len(msgs) == 0 {
		fmt.Println("Nothing to read aloud yet.")
		return
	}

	// Default to the newest assistant reply.
	target := -1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(msgs) {
			fmt.Println("Usage: /speak [N] where N is a message number.")
			return
		}
		target = n - 1
	} else {
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role == domain.RoleAssistant {
				target = i
				break
			}
		}
	}
	if target < 0 || msgs[target].Content == "" {
		fmt.Println("Nothing to read aloud yet.")
		return
	}
	if err := r.speech.Speak(msgs[target].Content, msgs[target].ID); err != nil {
		if errors.Is(err, domain.ErrSpeechUnsupported) {
			fmt.Println("Speech is not configured. Set TTS_COMMAND to enable it.")
			return
		}
		r.Toast("Could not start speech")
	}
}

// listenCommand captures one spoken utterance and sends it as a turn.
// Listening replaces typed input for that turn.
func (r *REPL) listenCommand(ctx context.Context) {
	fmt.Println("Listening...")
	text, err := r.speech.Listen(ctx, func(interim string) {
		fmt.Printf("\r... %s", interim)
	})
	fmt.Println()
	if err != nil {
		if errors.Is(err, domain.ErrSpeechUnsupported) {
			fmt.Println("Voice input is not configured on this machine.")
			return
		}
		r.Toast("Voice capture failed")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		fmt.Println("Didn't catch that.")
		return
	}
	fmt.Printf("you> %s\n", text)
	r.sendTurn(ctx, text)
}

func (r *REPL) ttsCommand(args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Printf("Live speech is %s. Usage: /tts on|off\n", onOff(r.speech.Enabled()))
		return
	}
	on := args[0] == "on"
	r.speech.SetEnabled(on)
	if !on {
		r.speech.Stop()
	}
	fmt.Printf("Live speech %s.\n", onOff(on))
}

func (r *REPL) langCommand(args []string) {
	if len(args) != 1 {
		fmt.Printf("Speech language is %s.\n", r.speech.Language())
		return
	}
	lang := args[0]
	if !speech.IsSupported(lang) {
		fmt.Printf("Unsupported language %q. Supported: %v\n", lang, speech.SupportedLanguages)
		return
	}
	r.speech.SetLanguage(lang)
	fmt.Printf("Speech language set to %s.\n", lang)
}

func (r *REPL) printMessage(m domain.Message) {
	prefix := "you"
	if m.Role == domain.RoleAssistant {
		prefix = "ai "
	}
	fmt.Printf("%s> %s\n", prefix, m.Content)
	if m.Role == domain.RoleAssistant && m.Emotion != domain.EmotionNone {
		fmt.Printf("     (sensing you might be feeling %s)\n", m.Emotion)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  /new                start a fresh chat
  /list               list conversations
  /select N           open conversation N
  /delete N           delete conversation N
  /mood               mood stats for the last week
  /mood <m> [i] [note] log a mood (happy calm sad stressed anxious neutral)
  /journal            list gratitude entries
  /journal add <text> add a gratitude entry
  /journal rm N       delete entry N
  /quote              quote of the day (fetch|random|save|list|rm N)
  /speak [N]          read a reply aloud
  /listen             speak instead of typing
  /stop               stop speaking
  /tts on|off         speak replies as they finish
  /lang <code>        set speech language
  /quit               exit`)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (r *REPL) historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, historyFileName)
}

func (r *REPL) loadHistory() {
	if f, err := os.Open(r.historyPath()); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) close() {
	if f, err := os.OpenFile(r.historyPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		_, _ = r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
	r.speech.Stop()
}

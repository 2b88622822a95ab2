package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/gif"
	"os"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/image/font"

	"petbots.fbbdev.it/dotmtxled/ble"
	"petbots.fbbdev.it/dotmtxled/dotmtx"
	"petbots.fbbdev.it/dotmtxled/log"
)

var defaultDevice string
var defaultFont string
var defaultFontSize = 16.0

func init() {
	defaultDevice = os.Getenv("DOTMTXLED_DEVICE")

	defaultFont = os.Getenv("DOTMTXLED_FONT")
	if defaultFont == "" {
		defaultFont = "fonts/cherry-11-r.bdf"
	}

	if s := os.Getenv("DOTMTXLED_FONT_SIZE"); s != "" {
		if _, err := fmt.Sscan(s, &defaultFontSize); err != nil || defaultFontSize <= 0 {
			defaultFontSize = 16.0
		}
	}
}

var modeNames = map[string]dotmtx.DisplayMode{
	"replace": dotmtx.ModeReplace,
	"marquee": dotmtx.ModeMarquee,
	"reverse": dotmtx.ModeReverseMarquee,
	"rise":    dotmtx.ModeRise,
	"fall":    dotmtx.ModeFall,
	"blink":   dotmtx.ModeBlink,
	"fade":    dotmtx.ModeFade,
	"tetris":  dotmtx.ModeTetris,
	"fill":    dotmtx.ModeFill,
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	c := color.RGBA{A: 0xFF}
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

func parseColor(s string) (dotmtx.ColorMode, color.RGBA, error) {
	switch strings.ToLower(s) {
	case "white":
		return dotmtx.ColorWhite, color.RGBA{}, nil
	case "rainbow", "rainbow1":
		return dotmtx.ColorRainbow1, color.RGBA{}, nil
	case "rainbow2":
		return dotmtx.ColorRainbow2, color.RGBA{}, nil
	case "rainbow3":
		return dotmtx.ColorRainbow3, color.RGBA{}, nil
	case "rainbow4":
		return dotmtx.ColorRainbow4, color.RGBA{}, nil
	}

	c, err := parseHexColor(s)
	if err != nil {
		return 0, color.RGBA{}, err
	}
	return dotmtx.ColorFixed, c, nil
}

func parseBackground(s string) (dotmtx.BackgroundMode, color.RGBA, error) {
	if strings.ToLower(s) == "black" {
		return dotmtx.BackgroundBlack, color.RGBA{}, nil
	}

	c, err := parseHexColor(s)
	if err != nil {
		return 0, color.RGBA{}, err
	}
	return dotmtx.BackgroundFixed, c, nil
}

func sendMessage(bot *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		log.ErrorLogger.Print("tgbotapi: ", err)
		log.WarningLogger.Printf("could not send message (chat_id=%v)", chatID)
	}
}

const helpMessage = `Send me text and I will put it on the LED badge:
/show [Mode] [Speed] [Color] [Text]

[Mode] is one of: replace, marquee, reverse, rise, fall, blink, fade, tetris, fill.

[Speed] is the animation speed, a number between 0 and 255.

[Color] is white, rainbow, rainbow2, rainbow3, rainbow4, or a hex color like ff8800.

[Text] is the text to display. Maximum length is %d characters.

Try sending me this message:
/show marquee 95 rainbow HELLO %s

The badge shows one message at a time, so requests are queued and sent to it one by one.`

//lint:ignore ST1005 the string must be sent as a chat message
var errNotEnoughParams = errors.New("Some parameters are missing! I need [Mode] [Speed] [Color] [Text]. Try asking for /help if you don't know how to invoke me.")

//lint:ignore ST1005 the string must be sent as a chat message
var errInvalidParams = errors.New("Some parameters are not valid. [Mode] must be a mode name, [Speed] a number between 0 and 255 and [Color] a color name or hex color.")

//lint:ignore ST1005 the string must be sent as a chat message
var errTextTooLong = fmt.Errorf("[Text] is too long. The limit is %v characters.", dotmtx.MaxChars)

func parseShowQuery(query string) (string, dotmtx.Options, error) {
	re := regexp.MustCompile(`^\s*(\S+)\s+(\S+)\s+(\S+)\s+(.+)$`)
	match := re.FindStringSubmatch(query)

	if match == nil || match[4] == "" {
		return "", dotmtx.Options{}, errNotEnoughParams
	}

	mode, ok := modeNames[strings.ToLower(match[1])]
	if !ok {
		return "", dotmtx.Options{}, errInvalidParams
	}

	var speed int
	if _, err := fmt.Sscan(match[2], &speed); err != nil || speed < 0 || speed > 255 {
		return "", dotmtx.Options{}, errInvalidParams
	}

	colorMode, rgb, err := parseColor(match[3])
	if err != nil {
		return "", dotmtx.Options{}, errInvalidParams
	}

	text := match[4]
	if len(text) > dotmtx.MaxChars {
		return "", dotmtx.Options{}, errTextTooLong
	}

	opts := dotmtx.Options{
		Mode:      mode,
		Speed:     byte(speed),
		ColorMode: colorMode,
		Color:     rgb,
	}
	return text, opts, nil
}

func handleHelp(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	username := strings.ToUpper(update.SentFrom().UserName)

	msg := tgbotapi.NewMessage(
		update.Message.Chat.ID,
		fmt.Sprintf(helpMessage, dotmtx.MaxChars, username),
	)

	if _, err := bot.Send(msg); err != nil {
		log.ErrorLogger.Print("tgbotapi: ", err)
		log.WarningLogger.Printf("could not send help message (update_id=%v, chat_id=%v)", update.UpdateID, msg.ChatID)
	}
}

type showRequest struct {
	chatID int64
	text   string
	opts   dotmtx.Options
}

// badgeWorker owns the badge. There is one physical device and the chunk
// stream of a packet must not interleave with another, so all requests are
// funneled through this single goroutine.
func badgeWorker(bot *tgbotapi.BotAPI, badge *ble.Device, face font.Face, requests <-chan showRequest) {
	for req := range requests {
		err := dotmtx.Show(context.Background(), badge, face, req.text, req.opts)
		if err != nil {
			log.ErrorLogger.Print("show: ", err)
			log.WarningLogger.Printf("could not send text to the badge (chat_id=%v)", req.chatID)
			// the badge state is unknown after a failed send; drop the
			// link so the next request reconnects and starts clean
			badge.Disconnect()
			sendMessage(bot, req.chatID, "Could not reach the badge, try again in a moment.")
			continue
		}

		sendMessage(bot, req.chatID, "On the badge!")
	}
}

func handleShow(bot *tgbotapi.BotAPI, update tgbotapi.Update, base dotmtx.Options, requests chan<- showRequest) {
	query := update.Message.CommandArguments()
	if query == "" {
		sendMessage(bot, update.Message.Chat.ID, "Some parameters are missing:\n/show [Mode] [Speed] [Color] [Text]\n\nJust ask if you need some /help")
		return
	}

	text, opts, err := parseShowQuery(query)
	if err != nil {
		sendMessage(bot, update.Message.Chat.ID, err.Error())
		return
	}

	opts.Background = base.Background
	opts.BGColor = base.BGColor

	select {
	case requests <- showRequest{update.Message.Chat.ID, text, opts}:
	default:
		sendMessage(bot, update.Message.Chat.ID, "The badge is busy, try again in a moment.")
	}
}

func runBot(badge *ble.Device, face font.Face, opts dotmtx.Options) {
	tgbotapi.SetLogger(log.InfoLogger)

	bot, err := tgbotapi.NewBotAPI(os.Getenv("DOTMTXLED_TOKEN"))
	if err != nil {
		log.ErrorLogger.Print("tgbotapi: ", err)
		log.FatalLogger.Fatal("could not start bot")
	}

	bot.Debug = false
	log.InfoLogger.Printf("authorized on account %s", bot.Self.UserName)

	requests := make(chan showRequest, 8)
	go badgeWorker(bot, badge, face, requests)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}

		switch update.Message.Command() {
		case "start", "help":
			go handleHelp(bot, update)
		case "show":
			handleShow(bot, update, opts, requests)
		default:
			go sendMessage(bot, update.Message.Chat.ID, "I don't know that command")
		}
	}
}

func main() {
	fontPath := flag.String("font", defaultFont, "glyph source (.bdf, .otf or .ttf)")
	fontSize := flag.Float64("size", defaultFontSize, "point size for scalable fonts")
	device := flag.String("device", defaultDevice, "badge name or address (empty: first IDM-* badge)")
	text := flag.String("text", "", "render this text once and exit instead of running the bot")
	out := flag.String("out", "", "with -text: write the raw packet to this file instead of sending it")
	preview := flag.String("preview", "", "with -text: write a dot-matrix preview GIF to this file instead of sending")
	modeName := flag.String("mode", "marquee", "display mode: replace, marquee, reverse, rise, fall, blink, fade, tetris, fill")
	speed := flag.Int("speed", 95, "animation speed (0-255)")
	colorName := flag.String("color", "ff0000", "text color: white, rainbow, rainbow2-4 or a hex color")
	bgName := flag.String("bg", "black", "background: black or a hex color")
	flag.Parse()

	mode, ok := modeNames[strings.ToLower(*modeName)]
	if !ok {
		log.FatalLogger.Fatalf("unknown display mode %q", *modeName)
	}
	if *speed < 0 || *speed > 255 {
		log.FatalLogger.Fatal("speed must be between 0 and 255")
	}

	colorMode, rgb, err := parseColor(*colorName)
	if err != nil {
		log.FatalLogger.Fatal(err)
	}

	bgMode, bgRGB, err := parseBackground(*bgName)
	if err != nil {
		log.FatalLogger.Fatal(err)
	}

	opts := dotmtx.Options{
		Mode:       mode,
		Speed:      byte(*speed),
		ColorMode:  colorMode,
		Color:      rgb,
		Background: bgMode,
		BGColor:    bgRGB,
	}

	face, err := dotmtx.LoadFont(*fontPath, *fontSize)
	if err != nil {
		log.ErrorLogger.Print(err)
		log.FatalLogger.Fatal("could not load font")
	}

	if *text != "" && *preview != "" {
		strip, err := dotmtx.DrawStrip(face, *text)
		if err != nil {
			log.ErrorLogger.Print(err)
			log.FatalLogger.Fatal("could not render text")
		}
		f, err := os.Create(*preview)
		if err != nil {
			log.ErrorLogger.Print(err)
			log.FatalLogger.Fatal("could not create preview file")
		}
		err = gif.EncodeAll(f, dotmtx.Preview(strip))
		f.Close()
		if err != nil {
			log.ErrorLogger.Print(err)
			log.FatalLogger.Fatal("could not encode preview")
		}
		return
	}

	if *text != "" && *out != "" {
		packet, err := dotmtx.Encode(face, *text, opts)
		if err != nil {
			log.ErrorLogger.Print(err)
			log.FatalLogger.Fatal("could not encode text")
		}
		if err := os.WriteFile(*out, packet, 0o644); err != nil {
			log.ErrorLogger.Print(err)
			log.FatalLogger.Fatal("could not write packet")
		}
		return
	}

	badge := ble.New(*device)

	if *text != "" {
		if err := dotmtx.Show(context.Background(), badge, face, *text, opts); err != nil {
			log.ErrorLogger.Print(err)
			log.FatalLogger.Fatal("could not send text to the badge")
		}
		badge.Disconnect()
		return
	}

	if os.Getenv("DOTMTXLED_TOKEN") == "" {
		log.FatalLogger.Fatal("no -text given and DOTMTXLED_TOKEN is not set")
	}

	runBot(badge, face, opts)

	os.Exit(0)
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chargen/internal/ai"
	"chargen/internal/config"
	"chargen/internal/model"
	"chargen/internal/pkg/chartools"
	"chargen/internal/pkg/download"
	"chargen/internal/pkg/id"
	"chargen/internal/pkg/prompts"
	"chargen/internal/pkg/storage"
)

// Options 流水线开关
type Options struct {
	Native       bool
	Simple       bool
	Variations   int
	TextOnly     bool
	OpenBrowser  bool
	Interim      bool
	SaveDir      string // 为空表示不保存
	PromptsFile  string
	ImageModel   string
	ImageSize    string
	ImageQuality string
	ImageCount   int
}

// OptionsFromConfig 从配置构造流水线开关
func OptionsFromConfig(cfg *config.Config) Options {
	promptsFile := cfg.Pipeline.PromptsFile
	if promptsFile == "" {
		promptsFile = config.DefaultPromptsFile
	}
	return Options{
		Native:       cfg.Pipeline.Native,
		Simple:       cfg.Pipeline.Simple,
		Variations:   cfg.Pipeline.Variations,
		TextOnly:     cfg.Pipeline.TextOnly,
		OpenBrowser:  cfg.Pipeline.OpenBrowser,
		Interim:      cfg.Pipeline.Interim,
		SaveDir:      cfg.Pipeline.SaveDir,
		PromptsFile:  promptsFile,
		ImageModel:   cfg.Image.Model,
		ImageSize:    cfg.Image.Size,
		ImageQuality: cfg.Image.Quality,
		ImageCount:   cfg.Image.Count,
	}
}

// Result 一次运行的全部产物
type Result struct {
	RunID          string
	Ranked         []model.RankedCandidate // 仅 variations > 1 时有值
	Description    string                  // 选中的角色描述
	Scrubbed       string                  // 去除真实姓名后的描述
	ContentDetails string
	StyleDetails   string
	FinalPrompt    string // 截断前
	ClippedPrompt  string // 实际发送（不含前缀）
	Images         []model.ImageResult
	SavedFiles     []string
	Log            string
}

// Pipeline 角色图片生成流水线
// 职责: 按顺序编排补全、排序、去名、图片生成和保存
type Pipeline struct {
	ai         *ai.Client
	opts       Options
	store      storage.Storage  // 仅保存模式
	downloader *download.Client // 仅保存模式
	openURL    func(url string) error
	out        io.Writer
}

// NewPipeline 创建流水线
// store 为 nil 时不保存；保存目录应在收集输入之前由调用方通过 Prepare 创建
func NewPipeline(client *ai.Client, opts Options, store storage.Storage) *Pipeline {
	if opts.PromptsFile == "" {
		opts.PromptsFile = config.DefaultPromptsFile
	}
	return &Pipeline{
		ai:         client,
		opts:       opts,
		store:      store,
		downloader: download.NewClient(0),
		openURL:    browser.OpenURL,
		out:        os.Stdout,
	}
}

// WithOutput 替换标准输出
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	p.out = w
	return p
}

// WithBrowser 替换打开 URL 的方式
func (p *Pipeline) WithBrowser(open func(url string) error) *Pipeline {
	p.openURL = open
	return p
}

// WithDownloader 替换下载客户端
func (p *Pipeline) WithDownloader(d *download.Client) *Pipeline {
	p.downloader = d
	return p
}

// Run 执行流水线
// 业务流程: 1. 角色描述 -> 2. 排序（可选）-> 3. 去名 -> 4. 场景 -> 5. 风格
// -> 6. 最终提示词 -> 7. 生成图片 -> 8. 保存
func (p *Pipeline) Run(ctx context.Context, q *model.CharacterQuery) (*Result, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	res := &Result{RunID: id.New()}
	logger := log.With().Str("run_id", res.RunID).Logger()

	var runLog model.RunLog
	runLog.Query(q)
	logger.Debug().
		Str("character", q.Name).
		Str("replacement", q.Replacement).
		Bool("has_setting", q.HasSetting).
		Str("style", q.Style).
		Msg("query collected")

	// 1. 角色描述
	description, err := p.describe(ctx, q, res, &runLog, logger)
	if err != nil {
		return nil, err
	}
	res.Description = description
	runLog.Section("Expanded Character Details", description)
	p.interim("Expanded Character Details", description)

	// 2. 去除真实姓名，之后的请求只使用去名后的描述
	res.Scrubbed = chartools.ScrubName(description, q.Name, q.Replacement)
	runLog.Section("Scrubbed Character Details", res.Scrubbed)
	p.interim("Scrubbed Character Details", res.Scrubbed)

	// 3. 场景
	res.ContentDetails, err = p.sceneDetails(ctx, q, res.Scrubbed)
	if err != nil {
		return nil, err
	}
	runLog.Section("Content Detail", res.ContentDetails)
	p.interim("Content details", res.ContentDetails)

	// 4. 风格
	res.StyleDetails, err = p.ai.Completion.CompleteText(ctx, prompts.StyleSummary, map[string]string{
		"style": q.Style,
	})
	if err != nil {
		return nil, err
	}
	runLog.Section("Style details", res.StyleDetails)
	p.interim("Style details", res.StyleDetails)

	// 5. 最终提示词
	res.FinalPrompt, err = p.finalPrompt(ctx, res.ContentDetails, res.StyleDetails)
	if err != nil {
		return nil, err
	}
	runLog.Section("Final prompt", res.FinalPrompt)

	res.ClippedPrompt = ai.ClipPrompt(p.imageModel(), res.FinalPrompt)
	fmt.Fprintf(p.out, "Final prompt: \n%s\n\n", res.ClippedPrompt)

	// 6. 图片
	if !p.opts.TextOnly {
		if err := p.generate(ctx, res, &runLog, logger); err != nil {
			return nil, err
		}
	}

	// 7. 保存文本记录
	res.Log = runLog.String()
	if p.store != nil {
		key := path.Join(p.opts.SaveDir, p.opts.PromptsFile)
		saved, err := p.store.Upload(ctx, key, strings.NewReader(res.Log), storage.ContentType(key))
		if err != nil {
			return nil, fmt.Errorf("save prompts: %w", err)
		}
		res.SavedFiles = append(res.SavedFiles, saved)
	}

	logger.Info().
		Int("images", len(res.Images)).
		Int("saved_files", len(res.SavedFiles)).
		Msg("pipeline finished")

	return res, nil
}

func (p *Pipeline) check() error {
	if p.ai == nil || p.ai.Completion == nil {
		return errors.New("completion client is required")
	}
	if p.opts.Variations < 1 {
		return fmt.Errorf("variation count must be at least 1, got %d", p.opts.Variations)
	}
	if p.opts.Variations > 1 && p.ai.Embedding == nil {
		return errors.New("embedding client is required when ranking variations")
	}
	if !p.opts.TextOnly && p.ai.Image == nil {
		return errors.New("image client is required unless running text only")
	}
	if p.opts.SaveDir != "" && p.store == nil {
		return errors.New("storage is required in save mode")
	}
	return nil
}

// describe 获取角色描述；多个变体时按与参考文本的相似度排序，取第一名
func (p *Pipeline) describe(ctx context.Context, q *model.CharacterQuery, res *Result, runLog *model.RunLog, logger zerolog.Logger) (string, error) {
	fields := map[string]string{"character": q.Name}

	completions, err := p.ai.Completion.Complete(ctx, prompts.CharacterDescription, fields, p.opts.Variations)
	if err != nil {
		return "", err
	}
	if p.opts.Variations == 1 {
		return completions[0].Text, nil
	}

	// 参考文本即发给模型的角色描述请求本身
	key, err := prompts.Render(prompts.CharacterDescription, fields)
	if err != nil {
		return "", err
	}

	candidates := make([]string, len(completions))
	for i, c := range completions {
		candidates[i] = c.Text
	}

	ranked, err := p.ai.Embedding.EmbedAndRank(ctx, key, candidates)
	if err != nil {
		return "", fmt.Errorf("rank descriptions: %w", err)
	}
	if len(ranked) == 0 {
		return "", errors.New("rank descriptions: no candidates")
	}
	res.Ranked = ranked

	const header = "Subject Descriptions ranked by embedding distance:\n\n"
	runLog.Raw(header)
	p.printInterim(header)
	for _, r := range ranked {
		line := fmt.Sprintf("  %v: %s\n\n", r.Score, r.Text)
		runLog.Raw(line)
		p.printInterim(line)
	}

	logger.Debug().
		Int("candidates", len(ranked)).
		Int("selected", ranked[0].Index).
		Float64("score", ranked[0].Score).
		Msg("descriptions ranked")

	return ranked[0].Text, nil
}

// sceneDetails 组合角色和场景；没有场景时由模型自行选择合适的场景
func (p *Pipeline) sceneDetails(ctx context.Context, q *model.CharacterQuery, subject string) (string, error) {
	if q.HasSetting {
		return p.ai.Completion.CompleteText(ctx, prompts.SubjectWithSetting, map[string]string{
			"subject": subject,
			"setting": q.Setting,
		})
	}
	return p.ai.Completion.CompleteText(ctx, prompts.SubjectNativeSetting, map[string]string{
		"character": subject,
	})
}

// finalPrompt simple 模式直接拼接，否则再请求一次补全
func (p *Pipeline) finalPrompt(ctx context.Context, content, style string) (string, error) {
	if p.opts.Simple {
		return prompts.Render(prompts.SimplifiedImagePrompt, map[string]string{
			"scene_details": content,
			"style":         style,
		})
	}
	return p.ai.Completion.CompleteText(ctx, prompts.FinalImagePrompt, map[string]string{
		"content": content,
		"style":   style,
	})
}

// generate 生成图片并逐张输出、打开、下载
func (p *Pipeline) generate(ctx context.Context, res *Result, runLog *model.RunLog, logger zerolog.Logger) error {
	images, err := p.ai.Image.Generate(ctx, res.ClippedPrompt, p.opts.ImageSize, p.opts.ImageQuality, p.opts.ImageCount)
	if err != nil {
		return err
	}
	res.Images = images

	for idx, img := range images {
		if img.RevisedPrompt != "" {
			rewritten := fmt.Sprintf("Prompt rewritten by OpenAI: \n\n %s\n\n", img.RevisedPrompt)
			fmt.Fprintln(p.out, rewritten)
			runLog.Raw(rewritten)
		}

		fmt.Fprintln(p.out, img.URL)
		runLog.Raw(img.URL + " \n\n")

		if p.opts.OpenBrowser {
			if err := p.openURL(img.URL); err != nil {
				logger.Warn().Err(err).Str("url", img.URL).Msg("failed to open image in browser")
			}
		}

		if p.store != nil {
			saved, err := p.saveImage(ctx, idx, img.URL)
			if err != nil {
				return err
			}
			res.SavedFiles = append(res.SavedFiles, saved)
			logger.Info().Int("index", idx).Str("path", saved).Msg("image saved")
		}
	}
	return nil
}

func (p *Pipeline) saveImage(ctx context.Context, idx int, url string) (string, error) {
	data, err := p.downloader.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download image %d: %w", idx, err)
	}
	key := path.Join(p.opts.SaveDir, fmt.Sprintf("%d.png", idx))
	saved, err := p.store.Upload(ctx, key, bytes.NewReader(data), storage.ContentType(key))
	if err != nil {
		return "", fmt.Errorf("save image %d: %w", idx, err)
	}
	return saved, nil
}

func (p *Pipeline) imageModel() string {
	if p.ai.Image != nil {
		return p.ai.Image.Model()
	}
	return p.opts.ImageModel
}

// interim 在 --interim 模式下输出中间结果
func (p *Pipeline) interim(title, body string) {
	if p.opts.Interim {
		fmt.Fprintf(p.out, "%s:\n%s\n\n\n", title, body)
	}
}

// printInterim 在 --interim 模式下输出一段文本并换行
func (p *Pipeline) printInterim(s string) {
	if p.opts.Interim {
		fmt.Fprintln(p.out, s)
	}
}

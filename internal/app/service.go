package app

import (
	"ytsummarizer/internal/llm"
	"ytsummarizer/internal/transcript"
	"ytsummarizer/pkg/config"
	"ytsummarizer/pkg/prompts"
)

type Service struct {
	cfg      *config.Config
	resolver *transcript.Resolver
	llm      llm.Client
	prompts  *prompts.Prompts
}

type ServiceOptions struct {
	Config   *config.Config
	Resolver *transcript.Resolver
	LLM      llm.Client
	Prompts  *prompts.Prompts
}

func NewService(opts ServiceOptions) *Service {
	p := opts.Prompts
	if p == nil {
		p = prompts.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{
		cfg:      cfg,
		resolver: opts.Resolver,
		llm:      opts.LLM,
		prompts:  p,
	}
}

func (s *Service) Config() *config.Config { return s.cfg }
func (s *Service) Resolver() *transcript.Resolver { return s.resolver }
func (s *Service) LLM() llm.Client { return s.llm }
func (s *Service) Prompts() *prompts.Prompts { return s.prompts }

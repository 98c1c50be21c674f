package processor

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithcompExtractor 设置文本提取器组件
func WithcompExtractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.Extractor = extractor
	}
}

// WithcompEngine 设置语义引擎组件
func WithcompEngine(engine SemanticEngine) ComponentOpt {
	return func(c *Components) {
		c.Engine = engine
	}
}

// ----- 设置选项 -----

// WithsetExtraSkills 追加自定义技能词表
func WithsetExtraSkills(skills []string) SettingOpt {
	return func(s *Settings) {
		s.ExtraSkills = append(s.ExtraSkills, skills...)
	}
}

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

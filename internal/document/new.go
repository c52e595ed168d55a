package document

// StageDef describes one teaching stage and the evidence for it.
type StageDef struct {
	Name      string
	Keywords  []string
	Weight    float64
	Technique string
	Takeaway  string
}

// Options configures the builder.
type Options struct {
	MinTurns     int
	ExcerptRunes int
	Stages       []StageDef
}

// DefaultStages is a four-stage lesson arc.
func DefaultStages() []StageDef {
	return []StageDef{
		{
			Name:      "导入与任务建立",
			Keywords:  []string{"上课", "今天这节课", "今天", "走进", "谁能讲", "复习"},
			Weight:    0.15,
			Technique: "用一个核心问题快速收拢注意力，明确本课要讲清楚的道理。",
			Takeaway:  "备课时先写出本课必须讲明白的一个为什么。",
		},
		{
			Name:      "讲解示范",
			Keywords:  []string{"为什么", "比如", "看这里", "板书", "演示", "我们来看", "天平", "等于"},
			Weight:    0.35,
			Technique: "先让学生看见具体情境，再引导到符号表达，认知台阶清晰。",
			Takeaway:  "固定“情境→符号→回证”三步，提升建模稳定性。",
		},
		{
			Name:      "练习与表达",
			Keywords:  []string{"小组", "练习", "试一试", "你来说", "生活中", "讨论", "展示"},
			Weight:    0.35,
			Technique: "多组展示与追问，把“报答案”推向“讲推理”。",
			Takeaway:  "统一句式“因为……又因为……所以……”，并要求完整表达。",
		},
		{
			Name:      "总结收束",
			Keywords:  []string{"总结", "回顾", "今天我们学", "下课", "老师再见", "作业"},
			Weight:    0.15,
			Technique: "收束时回扣主问题，形成完整的学习闭环。",
			Takeaway:  "结尾留出半分钟，让学生复述两条核心结论。",
		},
	}
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{MinTurns: 4, ExcerptRunes: 72, Stages: DefaultStages()}
}

type implBuilder struct {
	opts Options
}

// New creates a Builder. Missing values fall back to DefaultOptions.
func New(opts Options) Builder {
	def := DefaultOptions()
	if opts.MinTurns <= 0 {
		opts.MinTurns = def.MinTurns
	}
	if opts.ExcerptRunes <= 0 {
		opts.ExcerptRunes = def.ExcerptRunes
	}
	if len(opts.Stages) == 0 {
		opts.Stages = def.Stages
	}
	opts.Stages = append([]StageDef(nil), opts.Stages...)
	return &implBuilder{opts: opts}
}

package components

// InputState 存储当前帧的输入状态
// 由平台层每个 tick 采集一次，游戏逻辑只读
type InputState struct {
	Quit   bool // 窗口关闭请求
	Left   bool // 左方向键按住
	Right  bool // 右方向键按住
	Fire   bool // 开火键本帧刚按下
	Escape bool // ESC 本帧刚按下
}

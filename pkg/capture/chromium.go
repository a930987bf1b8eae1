// Package capture 通过无头 Chromium 渲染页面并截取指定元素。
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// 默认参数与月历页面布局一致
const (
	DefaultWidth       = 1440
	DefaultHeight      = 1000
	DefaultScale       = 4
	DefaultTimeout     = 30 * time.Second
	DefaultSettleDelay = 300 * time.Millisecond
)

// Options 截图参数
type Options struct {
	Width       int           // 视口宽度（CSS 像素）
	Height      int           // 视口高度，元素超出时截图按元素实际高度
	Scale       float64       // 设备像素比，默认 4
	Timeout     time.Duration // 整个截图流程的超时
	SettleDelay time.Duration // data-ready 出现后等待最后一次绘制
	ExecPath    string        // Chromium 可执行文件，为空时自动查找
}

// Chromium 基于 chromedp 的元素截图器
type Chromium struct {
	opts Options
}

// NewChromium 创建截图器，未设置的参数使用默认值
func NewChromium(opts Options) *Chromium {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	return &Chromium{opts: opts}
}

// Capture 打开 url，等待 selector 可见后截取该元素，返回 PNG
func (c *Chromium) Capture(parent context.Context, url, selector string) ([]byte, error) {
	if url == "" || selector == "" {
		return nil, errors.New("capture: url 与 selector 不能为空")
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.NoSandbox, chromedp.DisableGPU)
	if c.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(c.opts.Width), int64(c.opts.Height), chromedp.EmulateScale(c.opts.Scale)),
		chromedp.Navigate(url),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Sleep(c.opts.SettleDelay),
		chromedp.Screenshot(selector, &png, chromedp.NodeVisible, chromedp.ByQuery),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("capture: chromedp 执行失败: %w", err)
	}
	if len(png) == 0 {
		return nil, errors.New("capture: 截图为空")
	}
	return png, nil
}

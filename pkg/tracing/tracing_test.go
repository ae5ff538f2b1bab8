package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupInMemory(t *testing.T, ratio float64) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := InitWithExporter(context.Background(), Config{
		ServiceName: "storefront-test",
		SampleRatio: ratio,
	}, sdktrace.WithSyncer(exporter))
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	t.Cleanup(func() {
		_ = shutdown(context.Background())
	})
	return exporter
}

// TestInitTracer exporter创建不依赖Collector在线
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{
		ServiceName: "storefront-test",
		Endpoint:    "localhost:4317",
		SampleRatio: 1,
		Insecure:    true,
	})
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	// Collector不在线时Shutdown可能返回导出错误,这里只关心不阻塞
	_ = shutdown(context.Background())
}

func TestStartSpan_ChildInheritsTraceID(t *testing.T) {
	exporter := setupInMemory(t, 1)

	ctx, root := StartSpan(context.Background(), "order", "CreateOrder")
	rootTraceID := ExtractTraceID(ctx)
	rootSpanID := ExtractSpanID(ctx)

	childCtx, child := StartSpan(ctx, "order", "CheckStock")
	if got := ExtractTraceID(childCtx); got != rootTraceID {
		t.Errorf("子Span的TraceID不匹配: root=%s, child=%s", rootTraceID, got)
	}
	if ExtractSpanID(childCtx) == rootSpanID {
		t.Error("子Span的SpanID不应与根Span相同")
	}

	child.End()
	root.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("期望导出2个Span,实际%d个", len(spans))
	}
	if spans[0].Name != "CheckStock" || spans[0].Parent.SpanID() != root.SpanContext().SpanID() {
		t.Errorf("子Span父子关系错误: %+v", spans[0].Parent)
	}
}

func TestSpan_AttributesAndStatus(t *testing.T) {
	exporter := setupInMemory(t, 1)

	_, span := StartSpan(context.Background(), "order", "CreateOrder")
	span.SetAttributes(attribute.String("user_id", "u-1"), attribute.Int("item_count", 2))
	span.RecordError(context.DeadlineExceeded)
	span.SetStatus(codes.Error, "timeout")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("期望导出1个Span,实际%d个", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("期望Span状态为Error,实际%v", spans[0].Status.Code)
	}
	if len(spans[0].Attributes) != 2 {
		t.Errorf("期望2个属性,实际%d个", len(spans[0].Attributes))
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("RecordError应产生1个事件,实际%d个", len(spans[0].Events))
	}
}

func TestSampler_NeverSample(t *testing.T) {
	exporter := setupInMemory(t, 0)

	ctx, span := StartSpan(context.Background(), "order", "Dropped")
	span.End()

	if len(exporter.GetSpans()) != 0 {
		t.Error("采样比例为0时不应导出Span")
	}
	if ExtractTraceID(ctx) == "" {
		t.Error("未采样的Span仍应携带有效TraceID")
	}
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	if id := ExtractTraceID(context.Background()); id != "" {
		t.Errorf("期望空字符串,实际: %s", id)
	}
	if id := ExtractSpanID(context.Background()); id != "" {
		t.Errorf("期望空字符串,实际: %s", id)
	}
}

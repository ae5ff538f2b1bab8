// Package tracing 基于OpenTelemetry的链路追踪
//
// 启动时调用InitTracer设置全局TracerProvider,业务代码通过StartSpan创建Span。
// Span经OTLP gRPC批量发送到Collector(Jaeger 1.35+可直接接收)。
//
//	shutdown, err := tracing.InitTracer(ctx, tracing.Config{
//	    ServiceName: "storefront-api",
//	    Endpoint:    "localhost:4317",
//	    SampleRatio: 1,
//	})
//	defer shutdown(context.Background())
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Config 追踪配置
type Config struct {
	ServiceName string
	// Endpoint OTLP gRPC地址,不带协议前缀,如localhost:4317
	Endpoint string
	// SampleRatio 采样比例,>=1全采样,<=0不采样
	SampleRatio float64
	Insecure    bool
}

// ShutdownFunc 刷新并关闭TracerProvider
type ShutdownFunc func(context.Context) error

// InitTracer 创建OTLP exporter并设置全局TracerProvider
func InitTracer(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	// 1. 创建OTLP gRPC Exporter(非阻塞连接,Collector未启动不影响服务启动)
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(dialCtx, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 批量发送
	return InitWithExporter(ctx, cfg, sdktrace.WithBatcher(exporter))
}

// InitWithExporter 使用指定的SpanProcessor设置全局TracerProvider
// 测试中配合tracetest.InMemoryExporter使用
func InitWithExporter(ctx context.Context, cfg Config, processor sdktrace.TracerProviderOption) (ShutdownFunc, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(Sampler(cfg.SampleRatio))),
		processor,
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	// W3C traceparent + baggage
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// Sampler 根据采样比例选择采样器
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(ratio)
	}
}

// StartSpan 从全局Provider创建Span
// 必须用返回的ctx调用下游函数,子Span才能挂到当前Span下
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID,用于日志关联
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

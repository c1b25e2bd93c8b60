package cmd

import (
	"context"
	"time"

	"github.com/ckhero/content-tree/common"
	"github.com/ckhero/content-tree/publish"
	"github.com/ckhero/content-tree/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	publishMethodForm = "form"
	publishMethodRPC  = "rpc"
)

// sourceArgument selects where the content tree is loaded from and published to.
type sourceArgument struct {
	loadFile string
	loadURL  string

	publishFile   string
	publishURLs   []string
	publishMethod string

	timeout time.Duration
}

func bindLoaderFlags(cmd *cobra.Command, args *sourceArgument) {
	cmd.Flags().StringVar(&args.loadFile, "load-file", "", "Viewer data module file to load content from")
	cmd.Flags().StringVar(&args.loadURL, "load-url", "", "Viewer data module URL to load content from")
	cmd.MarkFlagsOneRequired("load-file", "load-url")
	cmd.MarkFlagsMutuallyExclusive("load-file", "load-url")

	cmd.Flags().DurationVar(&args.timeout, "timeout", 30*time.Second, "Timeout of each load or publish request")
}

func bindSourceFlags(cmd *cobra.Command, args *sourceArgument) {
	bindLoaderFlags(cmd, args)

	cmd.Flags().StringVar(&args.publishFile, "publish-file", "", "Viewer data module file to publish content to")
	cmd.Flags().StringSliceVar(&args.publishURLs, "publish-url", nil, "Gateway URLs to publish content to, separated by comma")
	cmd.Flags().StringVar(&args.publishMethod, "publish-method", publishMethodForm, "Publish method of the gateway, form or rpc")
	cmd.MarkFlagsMutuallyExclusive("publish-file", "publish-url")
}

func newLoader(args sourceArgument) publish.Loader {
	if args.loadFile != "" {
		return &publish.FileLoader{Path: args.loadFile}
	}

	return publish.NewHTTPLoader(args.loadURL, publish.HTTPOption{
		Timeout:   args.timeout,
		LogOption: common.LogOption{Logger: logrus.StandardLogger()},
	})
}

// newPublisher creates the configured publisher, nil if none configured. Content is mirrored to all
// gateways if more than one is given.
func newPublisher(args sourceArgument) (publish.Publisher, func(), error) {
	if args.publishFile != "" {
		return &publish.FilePublisher{Path: args.publishFile}, func() {}, nil
	}

	var (
		publishers []publish.Publisher
		closers    []func()
	)

	closer := func() {
		for _, fn := range closers {
			fn()
		}
	}

	for _, url := range args.publishURLs {
		switch args.publishMethod {
		case publishMethodForm:
			publishers = append(publishers, publish.NewFormPublisher(url, publish.HTTPOption{
				Timeout:   args.timeout,
				LogOption: common.LogOption{Logger: logrus.StandardLogger()},
			}))
		case publishMethodRPC:
			publisher, err := publish.NewRPCPublisher(url)
			if err != nil {
				closer()
				return nil, nil, errors.WithMessagef(err, "failed to connect to the gateway RPC %s", url)
			}
			publishers = append(publishers, publisher)
			closers = append(closers, func() { publisher.Close() })
		default:
			closer()
			return nil, nil, errors.Errorf("unknown publish method %q", args.publishMethod)
		}
	}

	switch len(publishers) {
	case 0:
		return nil, closer, nil
	case 1:
		return publishers[0], closer, nil
	default:
		return publish.NewMirrorPublisher(publishers), closer, nil
	}
}

// mustLoadSession loads the editing session, any failure is fatal.
func mustLoadSession(args sourceArgument) (*session.Session, func()) {
	publisher, closer, err := newPublisher(args)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize publisher")
	}

	ctx, cancel := context.WithTimeout(context.Background(), args.timeout)
	defer cancel()

	sess, err := session.Load(ctx, newLoader(args), publisher, session.Option{
		LogOption: common.LogOption{Logger: logrus.StandardLogger()},
	})
	if err != nil {
		closer()
		logrus.WithError(err).Fatal("Failed to load content tree")
	}

	return sess, closer
}

// mustPublish publishes text with the configured publisher, any failure is fatal.
func mustPublish(publisher publish.Publisher, text string, timeout time.Duration) *publish.Result {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := publisher.Publish(ctx, text)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to publish content")
	}

	return result
}

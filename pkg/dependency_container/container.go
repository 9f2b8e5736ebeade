package dependency_container

import (
	"errors"
	"fmt"
	"io"

	"github.com/NeuralTrust/supaquery/pkg/app/query"
	"github.com/NeuralTrust/supaquery/pkg/common"
	"github.com/NeuralTrust/supaquery/pkg/config"
	"github.com/NeuralTrust/supaquery/pkg/domain/table"
	"github.com/NeuralTrust/supaquery/pkg/infra/database"
	"github.com/NeuralTrust/supaquery/pkg/infra/httpx"
	"github.com/NeuralTrust/supaquery/pkg/infra/supabase"
	"github.com/NeuralTrust/supaquery/pkg/version"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Reader table.Reader
	Runner query.Runner
	DB     *database.DB
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Out    io.Writer
}

func NewContainer(di ContainerDI) (*Container, error) {
	c := &Container{}

	switch di.Cfg.Supabase.Backend {
	case "", common.BackendREST:
		httpClient := httpx.NewFastHTTPClient(
			httpx.WithTimeout(di.Cfg.HTTP.Timeout),
			httpx.WithInsecureSkipVerify(di.Cfg.HTTP.InsecureSkipVerify),
			httpx.WithUserAgent(version.ClientInfo()),
		)
		client, err := supabase.NewClient(
			di.Cfg.Supabase.URL,
			di.Cfg.Supabase.AnonKey,
			supabase.WithHTTPClient(httpClient),
			supabase.WithSchema(di.Cfg.Supabase.Schema),
			supabase.WithLogger(di.Logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create supabase client: %w", err)
		}
		c.Reader = client

	case common.BackendPostgres:
		db, err := database.NewDB(di.Logger, &database.Config{
			DSN:         di.Cfg.Database.URL,
			PingTimeout: di.Cfg.HTTP.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		c.Reader = database.NewTableReader(db.DB, di.Cfg.Supabase.Schema, di.Logger)

	default:
		return nil, fmt.Errorf("unknown backend %q (expected %q or %q)",
			di.Cfg.Supabase.Backend, common.BackendREST, common.BackendPostgres)
	}

	c.Runner = query.NewRunner(c.Reader, di.Out, di.Logger)
	return c, nil
}

func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	if err := c.DB.Close(); err != nil {
		return errors.Join(errors.New("failed to close database"), err)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/samirrijal/routeguide/internal/adapters/dataset"
	natsadapter "github.com/samirrijal/routeguide/internal/adapters/nats"
	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/pkg/geospatial"
	pb "github.com/samirrijal/routeguide/internal/routeguidepb"
)

var getCmd = &cobra.Command{
	Use:   "get <latitude> <longitude>",
	Short: "Look up the feature at a point given in degrees * 1e7",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		conn, client, err := dial()
		if err != nil {
			return err
		}
		defer conn.Close()

		return printFeature(cmd, client, p)
	},
}

var (
	listNear    []float64
	listRadius  float64
	listRect    []int32
	listGeoJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List features inside a rectangle or around a point",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rect, err := listRectangle()
		if err != nil {
			return err
		}
		conn, client, err := dial()
		if err != nil {
			return err
		}
		defer conn.Close()

		features, err := listFeatures(cmd.Context(), client, rect)
		if err != nil {
			return err
		}
		if listGeoJSON {
			return dataset.EncodeGeoJSON(cmd.OutOrStdout(), features)
		}
		for _, f := range features {
			fmt.Fprintf(cmd.OutOrStdout(), "%q at %d, %d\n", f.Name, f.Location.Latitude, f.Location.Longitude)
		}
		return nil
	},
}

var (
	recordPoints  int
	recordDataset string
	recordDelay   time.Duration
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a random route through features of a dataset file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, client, err := dial()
		if err != nil {
			return err
		}
		defer conn.Close()

		return recordRoute(cmd, client)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Exchange route notes and print the echoes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, client, err := dial()
		if err != nil {
			return err
		}
		defer conn.Close()

		return routeChat(cmd, client)
	},
}

var (
	watchNATSURL string
	watchDurable string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print route summaries published to NATS until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sub, err := natsadapter.NewSubscriber(watchNATSURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		out := cmd.OutOrStdout()
		err = sub.SubscribeRouteRecorded(cmd.Context(), watchDurable, func(_ context.Context, e *natsadapter.RouteRecorded) error {
			s := e.Summary
			_, err := fmt.Fprintf(out, "%s %s: %d points, %d features, %d m, %d s\n",
				e.RecordedAt.Format(time.RFC3339), e.ID, s.PointCount, s.FeatureCount, s.Distance, s.ElapsedTime)
			return err
		})
		if err != nil {
			return err
		}

		<-cmd.Context().Done()
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run all four calls against the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, client, err := dial()
		if err != nil {
			return err
		}
		defer conn.Close()

		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "-------------- GetFeature --------------")
		if err := printFeature(cmd, client, domain.Point{Latitude: 409146138, Longitude: -746188906}); err != nil {
			return err
		}
		if err := printFeature(cmd, client, domain.Point{}); err != nil {
			return err
		}

		fmt.Fprintln(out, "-------------- ListFeatures --------------")
		features, err := listFeatures(cmd.Context(), client, domain.Rectangle{
			Lo: domain.Point{Latitude: 400000000, Longitude: -750000000},
			Hi: domain.Point{Latitude: 420000000, Longitude: -730000000},
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d features in the rectangle\n", len(features))

		fmt.Fprintln(out, "-------------- RecordRoute --------------")
		if err := recordRoute(cmd, client); err != nil {
			return err
		}

		fmt.Fprintln(out, "-------------- RouteChat --------------")
		return routeChat(cmd, client)
	},
}

func init() {
	listCmd.Flags().Float64SliceVar(&listNear, "near", nil, "center as lat,lon in decimal degrees")
	listCmd.Flags().Float64Var(&listRadius, "radius", 10000, "radius in meters around --near")
	listCmd.Flags().Int32SliceVar(&listRect, "rect", []int32{400000000, -750000000, 420000000, -730000000},
		"rectangle corners as lo_lat,lo_lon,hi_lat,hi_lon in degrees * 1e7")
	listCmd.Flags().BoolVar(&listGeoJSON, "geojson", false, "print the result as a GeoJSON FeatureCollection")

	for _, c := range []*cobra.Command{recordCmd, demoCmd} {
		c.Flags().IntVar(&recordPoints, "points", 10, "number of points to send")
		c.Flags().StringVar(&recordDataset, "dataset", "data/route_guide_db.json", "dataset file to pick points from")
		c.Flags().DurationVar(&recordDelay, "delay", 100*time.Millisecond, "pause between points")
	}

	watchCmd.Flags().StringVar(&watchNATSURL, "nats-url", "nats://localhost:4222", "NATS server URL")
	watchCmd.Flags().StringVar(&watchDurable, "durable", "", "durable consumer name; ephemeral when empty")
}

func parsePoint(lat, lon string) (domain.Point, error) {
	la, err := strconv.ParseInt(lat, 10, 32)
	if err != nil {
		return domain.Point{}, fmt.Errorf("latitude: %w", err)
	}
	lo, err := strconv.ParseInt(lon, 10, 32)
	if err != nil {
		return domain.Point{}, fmt.Errorf("longitude: %w", err)
	}
	return domain.Point{Latitude: int32(la), Longitude: int32(lo)}, nil
}

func listRectangle() (domain.Rectangle, error) {
	if len(listNear) > 0 {
		if len(listNear) != 2 {
			return domain.Rectangle{}, errors.New("--near takes exactly lat,lon")
		}
		return geospatial.BoundingBox(geospatial.FromDegrees(listNear[0], listNear[1]), listRadius), nil
	}
	if len(listRect) != 4 {
		return domain.Rectangle{}, errors.New("--rect takes exactly four values")
	}
	return domain.Rectangle{
		Lo: domain.Point{Latitude: listRect[0], Longitude: listRect[1]},
		Hi: domain.Point{Latitude: listRect[2], Longitude: listRect[3]},
	}, nil
}

func toWire(p domain.Point) *pb.Point {
	return &pb.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

func printFeature(cmd *cobra.Command, client pb.RouteGuideClient, p domain.Point) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	f, err := client.GetFeature(ctx, toWire(p))
	if err != nil {
		return fmt.Errorf("GetFeature: %w", err)
	}
	if f.GetName() == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Found no feature at %d, %d\n", p.Latitude, p.Longitude)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Feature called %q at %d, %d\n", f.GetName(), p.Latitude, p.Longitude)
	return nil
}

func listFeatures(ctx context.Context, client pb.RouteGuideClient, rect domain.Rectangle) ([]domain.Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stream, err := client.ListFeatures(ctx, &pb.Rectangle{Lo: toWire(rect.Lo), Hi: toWire(rect.Hi)})
	if err != nil {
		return nil, fmt.Errorf("ListFeatures: %w", err)
	}

	var features []domain.Feature
	for {
		f, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return features, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ListFeatures: %w", err)
		}
		features = append(features, domain.Feature{
			Name: f.GetName(),
			Location: domain.Point{
				Latitude:  f.GetLocation().GetLatitude(),
				Longitude: f.GetLocation().GetLongitude(),
			},
		})
	}
}

func recordRoute(cmd *cobra.Command, client pb.RouteGuideClient) error {
	repo, err := dataset.NewFileRepository(recordDataset, "")
	if err != nil {
		return err
	}
	features, err := repo.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(features) == 0 {
		return errors.New("dataset is empty")
	}

	stream, err := client.RecordRoute(cmd.Context())
	if err != nil {
		return fmt.Errorf("RecordRoute: %w", err)
	}
	for range recordPoints {
		p := features[rand.IntN(len(features))].Location
		fmt.Fprintf(cmd.OutOrStdout(), "Visiting point %d, %d\n", p.Latitude, p.Longitude)
		if err := stream.Send(toWire(p)); err != nil {
			return fmt.Errorf("RecordRoute send: %w", err)
		}
		select {
		case <-time.After(recordDelay):
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}

	s, err := stream.CloseAndRecv()
	if err != nil {
		return fmt.Errorf("RecordRoute: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Finished trip with %d points\nPassed %d features\nTravelled %d meters\nIt took %d seconds\n",
		s.PointCount, s.FeatureCount, s.Distance, s.ElapsedTime)
	return nil
}

func routeChat(cmd *cobra.Command, client pb.RouteGuideClient) error {
	notes := []*pb.RouteNote{
		{Location: &pb.Point{Latitude: 0, Longitude: 1}, Message: "First message"},
		{Location: &pb.Point{Latitude: 0, Longitude: 2}, Message: "Second message"},
		{Location: &pb.Point{Latitude: 0, Longitude: 3}, Message: "Third message"},
		{Location: &pb.Point{Latitude: 0, Longitude: 1}, Message: "Fourth message"},
		{Location: &pb.Point{Latitude: 0, Longitude: 2}, Message: "Fifth message"},
		{Location: &pb.Point{Latitude: 0, Longitude: 3}, Message: "Sixth message"},
	}

	stream, err := client.RouteChat(cmd.Context())
	if err != nil {
		return fmt.Errorf("RouteChat: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		for {
			in, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				done <- nil
				return
			}
			if err != nil {
				done <- fmt.Errorf("RouteChat recv: %w", err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Got message %q at point(%d, %d)\n",
				in.GetMessage(), in.GetLocation().GetLatitude(), in.GetLocation().GetLongitude())
		}
	}()

	for _, n := range notes {
		fmt.Fprintf(cmd.OutOrStdout(), "Sending message %q at point(%d, %d)\n",
			n.Message, n.Location.Latitude, n.Location.Longitude)
		if err := stream.Send(n); err != nil {
			return fmt.Errorf("RouteChat send: %w", err)
		}
	}
	if err := stream.CloseSend(); err != nil {
		return fmt.Errorf("RouteChat close: %w", err)
	}
	return <-done
}

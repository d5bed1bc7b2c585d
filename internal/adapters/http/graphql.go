package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	stayType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stay",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.String},
			"name":            &graphql.Field{Type: graphql.String},
			"address":         &graphql.Field{Type: graphql.String},
			"location":        &graphql.Field{Type: geoPointType},
			"price_per_night": &graphql.Field{Type: graphql.Float},
			"rating":          &graphql.Field{Type: graphql.Float},
			"amenities":       &graphql.Field{Type: graphql.String},
			"distance":        &graphql.Field{Type: graphql.Float},
		},
	})

	spotType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TouristSpot",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: geoPointType},
			"description": &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"image_url":   &graphql.Field{Type: graphql.String},
			"rating":      &graphql.Field{Type: graphql.Float},
			"distance":    &graphql.Field{Type: graphql.Float},
			"score":       &graphql.Field{Type: graphql.Float},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id":                   &graphql.Field{Type: graphql.String},
			"title":                &graphql.Field{Type: graphql.String},
			"description":          &graphql.Field{Type: graphql.String},
			"location":             &graphql.Field{Type: graphql.String},
			"coordinate":           &graphql.Field{Type: geoPointType},
			"date":                 &graphql.Field{Type: graphql.String},
			"tags":                 &graphql.Field{Type: graphql.String},
			"organizer":            &graphql.Field{Type: graphql.String},
			"visibility_radius_km": &graphql.Field{Type: graphql.Float},
			"interested_count":     &graphql.Field{Type: graphql.Int},
			"distance":             &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"stays": &graphql.Field{
				Type:        graphql.NewList(stayType),
				Description: "List stays, nearest-first when lat/lon are given",
				Args: graphql.FieldConfigArgument{
					"lat":          &graphql.ArgumentConfig{Type: graphql.Float},
					"lon":          &graphql.ArgumentConfig{Type: graphql.Float},
					"max_distance": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
					"max_price":    &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer, err := viewerFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					return deps.Stays.List(p.Context, usecases.StayFilter{
						Viewer:        viewer,
						MaxDistanceKm: p.Args["max_distance"].(float64),
						MaxPrice:      p.Args["max_price"].(float64),
					})
				},
			},
			"stay": &graphql.Field{
				Type:        stayType,
				Description: "Get a stay by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Stays.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"touristSpots": &graphql.Field{
				Type:        graphql.NewList(spotType),
				Description: "List tourist spots by category",
				Args: graphql.FieldConfigArgument{
					"lat":      &graphql.ArgumentConfig{Type: graphql.Float},
					"lon":      &graphql.ArgumentConfig{Type: graphql.Float},
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer, err := viewerFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					return deps.Spots.List(p.Context, viewer, p.Args["category"].(string), 0)
				},
			},
			"recommendations": &graphql.Field{
				Type:        graphql.NewList(spotType),
				Description: "Ranked spot recommendations (closest, rating, or balanced)",
				Args: graphql.FieldConfigArgument{
					"lat":        &graphql.ArgumentConfig{Type: graphql.Float},
					"lon":        &graphql.ArgumentConfig{Type: graphql.Float},
					"preference": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "balanced"},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer, err := viewerFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					pref := usecases.ParsePreference(p.Args["preference"].(string))
					return deps.Spots.Recommend(p.Context, viewer, pref, p.Args["limit"].(int))
				},
			},
			"events": &graphql.Field{
				Type:        graphql.NewList(eventType),
				Description: "Events visible from the viewer's location (lat/lon required)",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"tag": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					viewer, err := viewerFromArgs(p.Args)
					if err != nil {
						return nil, err
					}
					return deps.Events.List(p.Context, viewer, p.Args["tag"].(string))
				},
			},
			"event": &graphql.Field{
				Type:        eventType,
				Description: "Get an event by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Events.GetByID(p.Context, p.Args["id"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// viewerFromArgs builds a viewer location from optional GraphQL lat/lon args.
func viewerFromArgs(args map[string]interface{}) (*domain.GeoPoint, error) {
	var lat, lon *float64
	if v, ok := args["lat"].(float64); ok {
		lat = &v
	}
	if v, ok := args["lon"].(float64); ok {
		lon = &v
	}
	return usecases.Viewer(lat, lon)
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}

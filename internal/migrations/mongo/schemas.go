package mongo

import "go.mongodb.org/mongo-driver/bson"

func bookingSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"user_id", "facility_id", "start_time", "end_time", "status", "total_price"},
			"properties": bson.M{
				"user_id": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 64,
				},
				"facility_id": bson.M{
					"bsonType": "string",
				},
				"start_time": bson.M{
					"bsonType": "date",
				},
				"end_time": bson.M{
					"bsonType": "date",
				},
				"status": bson.M{
					"enum": []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"},
				},
				"total_price": bson.M{
					"bsonType": []string{"double", "int", "long", "decimal"},
					"minimum":  0,
				},
				"note": bson.M{
					"bsonType":  "string",
					"maxLength": 1000,
				},
				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}

func facilitySchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"name", "type", "capacity", "hourly_rate", "is_available"},
			"properties": bson.M{
				"name": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 100,
				},
				"description": bson.M{
					"bsonType":  "string",
					"maxLength": 2000,
				},
				"type": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 50,
				},
				"capacity": bson.M{
					"bsonType": []string{"int", "long"},
					"minimum":  1,
					"maximum":  10000,
				},
				"hourly_rate": bson.M{
					"bsonType": []string{"double", "int", "long", "decimal"},
					"minimum":  0,
				},
				"is_available": bson.M{
					"bsonType": "bool",
				},
				"image_url": bson.M{
					"bsonType":  "string",
					"maxLength": 500,
				},
				"address": bson.M{
					"bsonType":  "string",
					"maxLength": 300,
				},
			},
		},
	}
}

func slotLockSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "expires_at"},
			"properties": bson.M{
				"_id": bson.M{
					"bsonType": "string",
				},
				"expires_at": bson.M{
					"bsonType": "date",
				},
				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}

package main

import (
	"go.viam.com/rdk/components/arm"
	"go.viam.com/rdk/module"
	"go.viam.com/rdk/resource"
	urArm "ur_arm"
)

func main() {
	module.ModularMain(
		resource.APIModel{API: arm.API, Model: urArm.UR10Pattern},
	)
}
